package imagehandler

import (
	"bytes"
	"encoding/base64"
	"image"

	"github.com/janpfeifer/imagehandler/codec"
)

// ToBase64 encodes img as PNG and returns it in standard, padded, Base64.
func ToBase64(img image.Image) (string, error) {
	return ToBase64Format(img, "png")
}

// ToBase64Format encodes img in the named format and returns it in
// standard, padded, Base64.
//
// Unlike the other operations, failures are not logged: they are only
// returned, wrapped in ErrEncode.
func ToBase64Format(img image.Image, format string) (string, error) {
	if img == nil {
		return "", newKindError(ErrEncode, ErrNoImage, "as %s", format)
	}
	f, err := codec.Lookup(format)
	if err != nil {
		return "", newKindError(ErrEncode, err, "as %s", format)
	}
	var buf bytes.Buffer
	if err := f.Encode(&buf, img, EncodeOptions); err != nil {
		return "", newKindError(ErrEncode, err, "as %s", format)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FromBase64 decodes an image encoded by ToBase64 or ToBase64Format. As
// ToBase64, errors are returned without being logged, wrapped in ErrDecode.
func FromBase64(encoded string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, newKindError(ErrDecode, err, "from Base64")
	}
	img, _, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newKindError(ErrDecode, err, "from Base64")
	}
	return img, nil
}
