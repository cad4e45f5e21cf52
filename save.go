package imagehandler

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/janpfeifer/imagehandler/codec"
)

// FormatFromPath returns the format name SaveToFile uses for path: everything
// after the first '.', or the whole path if it has none. So "out.png" is
// "png", but "out.final.png" is "final.png", which is not a known format.
func FormatFromPath(path string) string {
	return path[strings.Index(path, ".")+1:]
}

// SaveToFile encodes img into the file at path, creating or truncating it.
// The format is given by FormatFromPath.
//
// It fails with ErrNoImage for a nil image and with ErrUnsupportedFormat for
// an unknown format, in both cases without touching the file. Errors while
// encoding may leave a partially written file. Failures are logged.
func SaveToFile(img image.Image, path string) error {
	if err := saveToFile(img, path); err != nil {
		glog.Errorf("imagehandler.SaveToFile(%q): %v", path, err)
		return err
	}
	return nil
}

func saveToFile(img image.Image, path string) (err error) {
	if img == nil {
		return ErrNoImage
	}
	format, err := codec.Lookup(FormatFromPath(path))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(file)
	if err = format.Encode(w, img, EncodeOptions); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	glog.V(2).Infof("Saved %s image %s to %q", format.Name, img.Bounds(), path)
	return nil
}
