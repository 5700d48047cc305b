package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "produtos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFeedLoaderLoadFromFile(t *testing.T) {
	path := writeFeedFile(t, `[{"id":"1","title":"Fone"},{"id":2,"title":"Relógio"}]`)

	loader := NewFeedLoader([]string{path})
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
}

func TestFeedLoaderLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Write([]byte(`[{"id":"1","title":"Fone"}]`))
	}))
	defer srv.Close()

	loader := NewFeedLoader([]string{srv.URL})
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestFeedLoaderFallsBackToNextSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	good := writeFeedFile(t, `[{"id":"1","title":"Fone"}]`)

	loader := NewFeedLoader([]string{srv.URL, good})
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestFeedLoaderAllSourcesFail(t *testing.T) {
	loader := NewFeedLoader([]string{filepath.Join(t.TempDir(), "missing.json")})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestFeedLoaderRejectsMalformedJSON(t *testing.T) {
	path := writeFeedFile(t, `{"not":"an array"}`)

	loader := NewFeedLoader([]string{path})
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}
