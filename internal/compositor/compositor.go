package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ivlev/text2gif/internal/system"
)

// FrameSource produces the raster frames of one animation variant.
// Render is pure with respect to the frame index: the same index always
// yields the same pixels, so frames may be composed in any order or in
// parallel.
type FrameSource interface {
	Frames() int
	Render(f int) (*image.RGBA, error)
}

// alphabet is the symbol set the snow and the forming letters are built
// from. The last three entries are the quietest and are excluded when a
// glyph is under construction.
var alphabet = []rune{'@', '#', '$', '%', '&', '*', '+', '=', '-', ':', '.', ' '}

// glyphAlphabet is the subset used inside a forming letter.
const glyphAlphabet = 9 // len(alphabet) - 3

// newCanvas takes a pooled buffer and fills it with the background. The
// fill overwrites every pixel, so reuse cannot leak previous frames.
func newCanvas(w, h int, bg color.RGBA) *image.RGBA {
	img := system.GetCanvas(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// scaleColor dims c toward black by the factor s in [0, 1].
func scaleColor(c color.RGBA, s float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * s),
		G: uint8(float64(c.G) * s),
		B: uint8(float64(c.B) * s),
		A: 0xff,
	}
}

// lerpColor interpolates channel-wise from a to b; t=1 is exactly b.
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 0xff,
	}
}

func gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}
