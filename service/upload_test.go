package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/parry/request"
)

func writeFixture(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestUpload_SendsMultipartBody(t *testing.T) {
	path := writeFixture(t, "report.txt", []byte("hello multipart"))

	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "report.txt", hdr.Filename)
		data, err := io.ReadAll(f)
		if assert.NoError(t, err) {
			assert.Equal(t, "hello multipart", string(data))
		}
		io.WriteString(w, `{"name":"Ada"}`)
	})

	v, ok, err := Upload[user](context.Background(), s, "/files", path, "file").Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", v.Name)
}

func TestUpload_MissingFileFailsBeforeDispatch(t *testing.T) {
	dispatched := false
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	})

	absent := filepath.Join(t.TempDir(), "absent.bin")
	_, _, err := Upload[user](context.Background(), s, "/files", absent, "file").Result()

	var ue *request.UnserializableBodyError
	require.ErrorAs(t, err, &ue)
	assert.False(t, dispatched)
}

func TestUploadProgress_ReportsFractionsBelowOne(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 256<<10)
	path := writeFixture(t, "large.bin", content)

	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := io.Copy(io.Discard, r.Body)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	})

	u := UploadProgress(context.Background(), s, "/files", path, "file")

	var fractions []float64
	for f := range u.Progress() {
		fractions = append(fractions, f)
	}

	require.NoError(t, u.Err())
	for i, f := range fractions {
		assert.Less(t, f, 1.0, "no discrete 1.0 element")
		assert.Greater(t, f, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, f, fractions[i-1], "fractions must be non-decreasing")
		}
	}
}

func TestUploadProgress_CancelSuppressesCompletion(t *testing.T) {
	path := writeFixture(t, "small.bin", []byte("x"))

	started := make(chan struct{})
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	u := UploadProgress(context.Background(), s, "/files", path, "file")
	<-started
	u.Cancel()

	select {
	case <-u.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Upload did not settle after cancel")
	}

	assert.True(t, u.Canceled())
	assert.ErrorIs(t, u.Err(), context.Canceled)
}

func TestUploadProgress_CompletedUploadIsNotCanceled(t *testing.T) {
	path := writeFixture(t, "small.bin", []byte("x"))

	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusNoContent)
	})

	u := UploadProgress(context.Background(), s, "/files", path, "file")
	require.NoError(t, u.Err())
	assert.False(t, u.Canceled())
}

func TestUploadProgress_StreamClosesOnServerError(t *testing.T) {
	path := writeFixture(t, "small.bin", []byte("x"))

	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "x")
	})

	u := UploadProgress(context.Background(), s, "/files", path, "file")

	select {
	case <-u.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Upload did not settle")
	}
	require.Error(t, u.Err())
}
