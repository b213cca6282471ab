package listing

import (
	"context"
	"fmt"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/mediatypes"
)

// Lister fetches the complete current listing for a category in one call.
// The backend does no filtering, sorting or pagination; that all happens
// locally in the gallery package.
type Lister interface {
	List(ctx context.Context, category mediatypes.Category) ([]gallery.Item, error)
}

// ListError wraps a transport or decoding failure from the storage backend.
// Callers must treat it as distinct from an empty listing.
type ListError struct {
	Category mediatypes.Category
	Err      error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("listing %s failed: %v", e.Category, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}
