package service

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/parry/response"
)

func TestDownload_ResolvesToStableFile(t *testing.T) {
	dir := t.TempDir()
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/report", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "hello download")
	}, WithDownloadDir(dir))

	path, ok, err := Download(context.Background(), s, "/files/report", nil).Result()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".txt"), "extension should come from the media type, got %s", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello download", string(data))
}

func TestDownload_DistinctNamesPerCall(t *testing.T) {
	dir := t.TempDir()
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	}, WithDownloadDir(dir))

	first, ok, err := Download(context.Background(), s, "/f", nil).Result()
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := Download(context.Background(), s, "/f", nil).Result()
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEqual(t, first, second)
}

func TestDownload_NoUsableMediaTypeCompletesEmpty(t *testing.T) {
	dir := t.TempDir()
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-vnd-unknown")
		io.WriteString(w, "bytes with no known type")
	}, WithDownloadDir(dir))

	o := Download(context.Background(), s, "/f", nil).Outcome()
	require.NoError(t, o.Err())
	assert.True(t, o.IsEmpty())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be exposed without a usable media type")
}

func TestDownload_ServerErrorYieldsNoFile(t *testing.T) {
	dir := t.TempDir()
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}, WithDownloadDir(dir))

	_, _, err := Download(context.Background(), s, "/f", nil).Result()
	var ae *response.AmbiguousServerError
	require.ErrorAs(t, err, &ae)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
