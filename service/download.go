package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/header"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/response"
)

// Download fetches path with the given query parameters, streams the body
// to disk, and resolves to a stable, uniquely named local file whose
// extension is inferred from the response's declared media type. A
// response with no usable media type completes empty rather than exposing
// a nameless file.
func Download(ctx context.Context, s *Service, path string, params map[string]dynamic.Value) *Call[string] {
	ctx, cancel := context.WithCancel(ctx)
	c := newCall[string](cancel)

	sess, release := s.acquire()

	d := request.Get(path).WithParams(params)
	req, err := request.Build(d, sess.cfg.BaseURL, s.enc, s.dec)
	if err != nil {
		release()
		cancel()
		c.settle(response.Failure[string](err))
		return c
	}
	sess.cfg.Headers.Apply(req.Header)

	opts := s.classifyOpts("")
	go func() {
		defer release()
		defer cancel()

		if err := sess.limiter.Wait(ctx); err != nil {
			c.settle(response.Failure[string](&response.TransportError{Err: err}))
			return
		}

		tmpPath, ex := sess.engine.DispatchDownload(ctx, req)
		if err, rejected := response.Reject(ex, opts); rejected {
			if tmpPath != "" {
				os.Remove(tmpPath)
			}
			c.settle(response.Failure[string](err))
			return
		}

		ext := extensionFor(ex.Header.Get(string(header.ContentType)))
		if ext == "" {
			os.Remove(tmpPath)
			c.settle(response.Empty[string]())
			return
		}

		dir := s.downloadDir
		if dir == "" {
			dir = os.TempDir()
		}
		stable := filepath.Join(dir, uuid.NewString()+ext)
		if err := os.Rename(tmpPath, stable); err != nil {
			os.Remove(tmpPath)
			c.settle(response.Failure[string](err))
			return
		}

		s.log.Debug().Str("url", req.URL.String()).Str("path", stable).Msg("download completed")
		c.settle(response.ValueOf(stable))
	}()
	return c
}

// extensionFor resolves a file extension from a declared media type, or ""
// when the type is unknown.
func extensionFor(contentType string) string {
	if contentType == "" {
		return ""
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	m := mimetype.Lookup(strings.TrimSpace(contentType))
	if m == nil {
		return ""
	}
	return m.Extension()
}
