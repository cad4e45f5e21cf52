// Package imagehandler loads, saves, converts and encodes images.
//
// Images are plain image.Image values. They can be converted to a matrix of
// packed pixels (see package pixels) and back, built from a matrix of gray
// levels, encoded to Base64 and deep copied.
//
// Operations that read or write images, or build them, log their failures
// with glog and return them: callers always get an explicit error together
// with a nil result. ToBase64 is the exception: it does not log, it only
// returns the error.
package imagehandler

import (
	"errors"
	"fmt"

	"github.com/janpfeifer/imagehandler/codec"
	"github.com/janpfeifer/imagehandler/fetch"
	"github.com/janpfeifer/imagehandler/pixels"
)

var (
	// ErrNoImage is returned when a nil image is given.
	ErrNoImage = pixels.ErrNoImage

	// ErrDecode is returned when a source cannot be read or decoded.
	ErrDecode = errors.New("cannot load image")

	// ErrEncode is returned by ToBase64 when the image cannot be encoded.
	ErrEncode = errors.New("cannot encode image")

	// ErrConstruction is returned when an image cannot be built from a matrix.
	ErrConstruction = pixels.ErrConstruction

	// ErrUnsupportedFormat is returned for format names with no encoder.
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat
)

// Fetcher opens the sources given to Load. Replace it, or its Client, to
// control timeouts and transport.
var Fetcher = &fetch.Fetcher{}

// EncodeOptions used by SaveToFile and ToBase64.
var EncodeOptions = &codec.Options{}

// kindError reports a failure of one of the kinds above (ErrDecode,
// ErrEncode) while keeping the underlying error reachable through
// errors.Is and errors.As.
type kindError struct {
	kind error
	msg  string
	err  error
}

func newKindError(kind, err error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%v %s: %v", e.kind, e.msg, e.err)
}

func (e *kindError) Unwrap() error { return e.err }

func (e *kindError) Is(target error) bool { return target == e.kind }
