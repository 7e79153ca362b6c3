package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	xdraw "image/draw"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrFontUnavailable reports that a requested font file could not be
// loaded. It is always recovered by substituting a builtin face, so
// callers treat it as a notice, not a failure.
var ErrFontUnavailable = errors.New("font unavailable")

// Role selects which builtin face substitutes a missing font file.
type Role int

const (
	RolePrimary Role = iota // bold monospace, the big headline glyphs
	RoleNoise               // regular monospace, the ASCII snow symbols
	RoleCaption             // proportional, the bottom caption line
)

// Face is a measured, drawable font face at a fixed size. An opentype
// face keeps internal scratch buffers, so all access is serialized: one
// Face may be shared by the parallel frame workers.
type Face struct {
	mu   sync.Mutex
	face font.Face
}

// Load opens a TTF/OTF file and returns a face at the given pixel size.
func Load(path string, size float64) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, path, err)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, path, err)
	}
	return newFace(ft, size)
}

// Builtin returns an embedded gofont face for the role. It cannot depend
// on the filesystem, so it is the terminal fallback for Resolve.
func Builtin(role Role, size float64) (*Face, error) {
	var ttf []byte
	switch role {
	case RoleNoise:
		ttf = gomono.TTF
	case RoleCaption:
		ttf = goregular.TTF
	default:
		ttf = gomonobold.TTF
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("builtin font parse: %w", err)
	}
	return newFace(ft, size)
}

// Resolve loads the font at path, substituting the builtin face for the
// role when the file is missing or corrupt. In the fallback case the
// returned face is valid and the error wraps ErrFontUnavailable so the
// caller can log the substitution.
func Resolve(path string, role Role, size float64) (*Face, error) {
	if path != "" {
		f, err := Load(path, size)
		if err == nil {
			return f, nil
		}
		fb, berr := Builtin(role, size)
		if berr != nil {
			return nil, berr
		}
		return fb, err
	}
	return Builtin(role, size)
}

func newFace(ft *opentype.Font, size float64) (*Face, error) {
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return &Face{face: face}, nil
}

// Measure returns the ink bounding-box width and height of s in pixels.
func (f *Face) Measure(s string) (w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bound, _ := font.BoundString(f.face, s)
	return (bound.Max.X - bound.Min.X).Ceil(), (bound.Max.Y - bound.Min.Y).Ceil()
}

// Advance returns the horizontal advance of s in pixels. Unlike Measure
// it is non-zero for whitespace, so it is what the compositor steps by.
func (f *Face) Advance(s string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, s).Ceil()
}

// DrawAt renders s with the top-left corner of its ink bounding box at
// (x, y), in the given color.
func (f *Face) DrawAt(dst xdraw.Image, s string, x, y int, c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bound, _ := font.BoundString(f.face, s)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x) - bound.Min.X, Y: fixed.I(y) - bound.Min.Y},
	}
	d.DrawString(s)
}

// Ascent returns the pixel distance from the ink top of s down to the
// baseline. Used to place per-letter draws on a shared baseline.
func (f *Face) Ascent(s string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	bound, _ := font.BoundString(f.face, s)
	return (-bound.Min.Y).Ceil()
}

// DrawBaseline renders s with the left edge of its ink at x and the pen
// on the given baseline, in the given color.
func (f *Face) DrawBaseline(dst xdraw.Image, s string, x, baseline int, c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bound, _ := font.BoundString(f.face, s)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x) - bound.Min.X, Y: fixed.I(baseline)},
	}
	d.DrawString(s)
}

// Source bundles the three faces one generation run draws with.
type Source struct {
	Primary *Face
	Noise   *Face
	Caption *Face
}
