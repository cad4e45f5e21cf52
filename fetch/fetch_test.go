package fetch

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, f *Fetcher, source string) []byte {
	t.Helper()
	r, err := f.Open(context.Background(), source)
	require.NoError(t, err)
	defer r.Close()
	content, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	return content
}

func TestOpenHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cat.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("meow"))
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}
	assert.Equal(t, []byte("meow"), readAll(t, f, srv.URL+"/cat.png"))

	_, err := f.Open(context.Background(), srv.URL+"/dog.png")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestOpenHTTPContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := (&Fetcher{}).Open(ctx, srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	require.NoError(t, ioutil.WriteFile(path, []byte("pixels"), 0o644))

	f := &Fetcher{}
	assert.Equal(t, []byte("pixels"), readAll(t, f, path))
	assert.Equal(t, []byte("pixels"), readAll(t, f, "file://"+filepath.ToSlash(path)))

	_, err := f.Open(context.Background(), filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenUnsupportedScheme(t *testing.T) {
	_, err := (&Fetcher{}).Open(context.Background(), "ftp://example.com/a.png")
	assert.Error(t, err)
}
