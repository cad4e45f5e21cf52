// Package fetch opens image sources: http(s) URLs, file URLs and plain
// filesystem paths.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/golang/glog"
)

// ErrStatus is returned when an HTTP source answers with a non-2xx status.
var ErrStatus = errors.New("unexpected HTTP status")

// Fetcher opens sources. The zero value is ready to use.
type Fetcher struct {
	// Client used for http and https sources. If nil, http.DefaultClient
	// is used. Set its Timeout to bound network fetches.
	Client *http.Client
}

// Open returns a reader with the contents of source, which the caller must
// close. The context only applies to network sources.
func (f *Fetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return openFile(source)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.get(ctx, u)
	case "file":
		return openFile(u.Path)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q in %q", u.Scheme, source)
	}
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", u, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w %q fetching %q", ErrStatus, resp.Status, u)
	}
	glog.V(2).Infof("Fetched %q: %s, %d bytes", u, resp.Header.Get("Content-Type"), resp.ContentLength)
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	glog.V(2).Infof("Opened file %q", path)
	return file, nil
}

// isWindowsDrive reports whether a parsed scheme is really a drive letter,
// as in `C:\images\a.png`.
func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1
}
