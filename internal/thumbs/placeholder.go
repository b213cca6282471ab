package thumbs

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// placeholderName is the well-known fallback image inside the cache dir.
const placeholderName = "placeholder.jpg"

// writePlaceholder materializes the fallback image: a black canvas at the
// configured thumbnail size. It is written once and reused for every item
// whose generation fails.
func (r *Resolver) writePlaceholder() (string, error) {
	path := filepath.Join(r.cfg.Dir, placeholderName)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	canvas := imaging.New(r.cfg.Width, r.cfg.Height, color.NRGBA{0, 0, 0, 255})
	if err := imaging.Save(canvas, path, imaging.JPEGQuality(r.cfg.Quality)); err != nil {
		return "", fmt.Errorf("failed to write placeholder image: %w", err)
	}
	return path, nil
}
