package pixels

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrNoImage is returned when a nil image is given.
	ErrNoImage = errors.New("no image")

	// ErrConstruction is returned when an image cannot be built from a matrix.
	ErrConstruction = errors.New("cannot construct image from matrix")
)

// Matrix is a grid of pixels indexed [x][y]. The outer dimension is the
// width, and column 0 gives the height.
type Matrix [][]Pixel

// Width of the matrix, the number of columns.
func (m Matrix) Width() int { return len(m) }

// Height of the matrix, the length of the first column. Zero for an empty
// matrix.
func (m Matrix) Height() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsRectangular reports whether all columns have the same length.
func (m Matrix) IsRectangular() bool {
	for _, column := range m {
		if len(column) != m.Height() {
			return false
		}
	}
	return true
}

// ToMatrix reads every pixel of img into a Matrix of dimensions
// [width][height]. Index (0, 0) maps to img.Bounds().Min.
func ToMatrix(img image.Image) (Matrix, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	m := make(Matrix, width)
	for x := 0; x < width; x++ {
		column := make([]Pixel, height)
		for y := 0; y < height; y++ {
			column[y] = pixelAt(img, bounds.Min.X+x, bounds.Min.Y+y)
		}
		m[x] = column
	}
	return m, nil
}

// pixelAt avoids the color.Color interface for the types this package builds.
func pixelAt(img image.Image, x, y int) Pixel {
	switch typed := img.(type) {
	case *image.NRGBA:
		c := typed.NRGBAAt(x, y)
		return RGBA(c.R, c.G, c.B, c.A)
	case *image.Gray:
		return Gray(typed.GrayAt(x, y).Y)
	default:
		return FromColor(img.At(x, y))
	}
}

// FromMatrix builds a new image of size [m.Width()][m.Height()] holding the
// pixels of m. Alpha is kept as given.
//
// The matrix is expected to be rectangular: a column longer than the first
// one fails with ErrConstruction, while a shorter column leaves the missing
// pixels transparent black.
func FromMatrix(m Matrix) (*image.NRGBA, error) {
	if err := checkDimensions(m.Width(), m.Height()); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for x, column := range m {
		if len(column) > img.Rect.Dy() {
			return nil, outOfBounds(x, len(column)-1)
		}
		for y, p := range column {
			img.SetNRGBA(x, y, p.NRGBA())
		}
	}
	return img, nil
}

// GrayMatrix is a grid of gray levels indexed [x][y]. Levels outside
// [0, 255] are clamped on use.
type GrayMatrix [][]int

// Clamp limits every value of the matrix to [0, 255], in place.
func (m GrayMatrix) Clamp() {
	for _, column := range m {
		for y, v := range column {
			column[y] = int(ClampGray(v))
		}
	}
}

// ClampGray limits v to [0, 255].
func ClampGray(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// FromGrayscale builds a new gray image from m. The matrix is clamped in
// place before anything else, so the caller observes the clamped values
// after the call, even if it fails.
//
// Shape requirements are the same as FromMatrix.
func FromGrayscale(m GrayMatrix) (*image.Gray, error) {
	m.Clamp()

	height := 0
	if len(m) > 0 {
		height = len(m[0])
	}
	if err := checkDimensions(len(m), height); err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, len(m), height))
	for x, column := range m {
		if len(column) > height {
			return nil, outOfBounds(x, len(column)-1)
		}
		for y, v := range column {
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrConstruction, width, height)
	}
	return nil
}

func outOfBounds(x, y int) error {
	return fmt.Errorf("%w: pixel (%d,%d) is out of bounds, matrix is not rectangular", ErrConstruction, x, y)
}
