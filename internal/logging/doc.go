// Package logging provides leveled logging for the gallery service.
//
// The level is resolved once from the environment: DEBUG=true forces debug
// output, otherwise LOG_LEVEL selects one of debug, info, warn or error.
// The default level is info.
//
// All functions use Printf-style formatting:
//
//	logging.Info("listed %d objects from %s", n, bucket)
//	logging.Debug("thumbnail cache hit: %s", name)
package logging
