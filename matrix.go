package imagehandler

import (
	"image"

	"github.com/golang/glog"
	"github.com/janpfeifer/imagehandler/pixels"
)

// ToMatrix returns the pixels of img as a matrix indexed [x][y]. A nil image
// fails with ErrNoImage.
func ToMatrix(img image.Image) (pixels.Matrix, error) {
	m, err := pixels.ToMatrix(img)
	if err != nil {
		glog.Errorf("imagehandler.ToMatrix: %v", err)
		return nil, err
	}
	return m, nil
}

// FromMatrix builds a new image from a rectangular pixel matrix. See
// pixels.FromMatrix for what happens with non-rectangular ones.
func FromMatrix(m pixels.Matrix) (image.Image, error) {
	img, err := pixels.FromMatrix(m)
	if err != nil {
		glog.Errorf("imagehandler.FromMatrix: %v", err)
		return nil, err
	}
	return img, nil
}

// FromGrayscale builds a new gray image from a matrix of gray levels.
//
// Side effect: m itself is clamped to [0, 255] before the image is built.
func FromGrayscale(m pixels.GrayMatrix) (image.Image, error) {
	img, err := pixels.FromGrayscale(m)
	if err != nil {
		glog.Errorf("imagehandler.FromGrayscale: %v", err)
		return nil, err
	}
	return img, nil
}
