package thumbs

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// letterbox scales the frame to fit within width x height preserving its
// aspect ratio and centers it on a black canvas, matching what the canvas
// rendering in the web app produced.
func letterbox(frame image.Image, width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, color.NRGBA{0, 0, 0, 255})
	fitted := imaging.Fit(frame, width, height, imaging.Lanczos)
	return imaging.PasteCenter(canvas, fitted)
}
