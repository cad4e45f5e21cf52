package imagehandler

import (
	"context"
	"image"

	"github.com/golang/glog"
	"github.com/janpfeifer/imagehandler/codec"
)

// Load reads and decodes the image at source, an http(s) URL, a file URL or a
// filesystem path. The format is detected from the contents.
//
// On failure the error is logged and returned wrapped in ErrDecode.
func Load(source string) (image.Image, error) {
	return LoadContext(context.Background(), source)
}

// LoadContext is like Load, with a context bounding network fetches.
func LoadContext(ctx context.Context, source string) (image.Image, error) {
	img, err := load(ctx, source)
	if err != nil {
		err = newKindError(ErrDecode, err, "from %q", source)
		glog.Errorf("imagehandler.Load: %v", err)
		return nil, err
	}
	return img, nil
}

func load(ctx context.Context, source string) (image.Image, error) {
	r, err := Fetcher.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, format, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("Loaded %s image %s from %q", format, img.Bounds(), source)
	return img, nil
}
