// Package codec maps format names ("png", "jpg", "gif", ...) to image
// encoders, and decodes images of any registered format.
//
// Decoders for png, jpeg, gif, bmp, tiff and webp are registered with the
// image package when codec is imported. Encoding is available for all of
// them but webp.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for format names that have no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options tunes the lossy encoders. Zero values select the library defaults.
type Options struct {
	// JPEGQuality ranges from 1 to 100, higher is better.
	JPEGQuality int

	// GIFColors is the maximum palette size, from 1 to 256.
	GIFColors int
}

// DefaultOptions is used by Encode.
var DefaultOptions = &Options{}

// Format is one encodable image format.
type Format struct {
	// Name is the canonical format name, as returned by image.Decode.
	Name string

	MimeType string

	// Lossless formats decode to exactly the pixels that were encoded.
	Lossless bool

	encode func(w io.Writer, img image.Image, opts *Options) error
}

// Encode writes img to w in this format. opts may be nil.
func (f *Format) Encode(w io.Writer, img image.Image, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions
	}
	if err := f.encode(w, img, opts); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.Name, err)
	}
	return nil
}

var (
	pngFormat = &Format{
		Name: "png", MimeType: "image/png", Lossless: true,
		encode: func(w io.Writer, img image.Image, _ *Options) error {
			return png.Encode(w, img)
		},
	}
	jpegFormat = &Format{
		Name: "jpeg", MimeType: "image/jpeg",
		encode: func(w io.Writer, img image.Image, opts *Options) error {
			var jpegOpts *jpeg.Options
			if opts.JPEGQuality > 0 {
				jpegOpts = &jpeg.Options{Quality: opts.JPEGQuality}
			}
			return jpeg.Encode(w, img, jpegOpts)
		},
	}
	gifFormat = &Format{
		Name: "gif", MimeType: "image/gif",
		encode: func(w io.Writer, img image.Image, opts *Options) error {
			var gifOpts *gif.Options
			if opts.GIFColors > 0 {
				gifOpts = &gif.Options{NumColors: opts.GIFColors}
			}
			return gif.Encode(w, img, gifOpts)
		},
	}
	bmpFormat = &Format{
		Name: "bmp", MimeType: "image/bmp", Lossless: true,
		encode: func(w io.Writer, img image.Image, _ *Options) error {
			return bmp.Encode(w, img)
		},
	}
	tiffFormat = &Format{
		Name: "tiff", MimeType: "image/tiff", Lossless: true,
		encode: func(w io.Writer, img image.Image, _ *Options) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		},
	}
)

// formats maps every accepted (lower case) name to its format.
var formats = map[string]*Format{
	"png":  pngFormat,
	"jpg":  jpegFormat,
	"jpeg": jpegFormat,
	"gif":  gifFormat,
	"bmp":  bmpFormat,
	"tif":  tiffFormat,
	"tiff": tiffFormat,
}

// Lookup returns the format for the given name, case insensitive. Formats
// that can only be decoded, like webp, are not found.
func Lookup(name string) (*Format, error) {
	f, found := formats[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Encode writes img to w in the named format, using DefaultOptions.
func Encode(w io.Writer, img image.Image, name string) error {
	f, err := Lookup(name)
	if err != nil {
		return err
	}
	return f.Encode(w, img, DefaultOptions)
}

// Decode reads an image of any registered format from r. It returns the
// format name detected.
func Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, name, nil
}
