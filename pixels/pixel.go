// Package pixels holds the matrix representation of images: a Pixel is one
// packed color, a Matrix is a grid of them indexed [x][y], and a GrayMatrix is
// a grid of gray levels.
//
// Functions here are pure: they never log and never keep state.
package pixels

import (
	"fmt"
	"image/color"
)

// Pixel is a packed, non-premultiplied 0xAARRGGBB color value.
type Pixel uint32

// RGBA packs the given channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Gray returns the opaque Pixel with all three color channels set to v.
func Gray(v uint8) Pixel {
	return RGBA(v, v, v, 0xFF)
}

// FromColor converts any color to a Pixel, undoing alpha-premultiplication.
func FromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Value returns the packed color value.
func (p Pixel) Value() uint32 { return uint32(p) }

func (p Pixel) A() uint8 { return uint8(p >> 24) }
func (p Pixel) R() uint8 { return uint8(p >> 16) }
func (p Pixel) G() uint8 { return uint8(p >> 8) }
func (p Pixel) B() uint8 { return uint8(p) }

// NRGBA returns the pixel as a color.NRGBA, which holds exactly the same
// information.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()}
}

// String returns the pixel in #AARRGGBB form.
func (p Pixel) String() string {
	return fmt.Sprintf("#%08X", uint32(p))
}
