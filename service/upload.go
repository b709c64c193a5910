package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/wesleyorama2/parry/codec"
	"github.com/wesleyorama2/parry/header"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/response"
)

// Upload posts the file at filePath as a multipart form field named
// formKey and decodes the response as T. The multipart encoder's content
// type replaces the codec's default for this request only.
func Upload[T any](ctx context.Context, s *Service, endpoint, filePath, formKey string) *Call[T] {
	ctx, cancel := context.WithCancel(ctx)
	c := newCall[T](cancel)

	form, err := codec.EncodeFormFile(filePath, formKey)
	if err != nil {
		cancel()
		c.settle(response.Failure[T](&request.UnserializableBodyError{Value: filePath, Err: err}))
		return c
	}

	sess, release := s.acquire()
	req, err := buildUpload(sess, s, endpoint, form, bytes.NewReader(form.Bytes()))
	if err != nil {
		release()
		cancel()
		c.settle(response.Failure[T](err))
		return c
	}

	opts := s.classifyOpts("")
	go func() {
		defer release()
		defer cancel()

		if err := sess.limiter.Wait(ctx); err != nil {
			c.settle(response.Failure[T](&response.TransportError{Err: err}))
			return
		}
		ex := sess.engine.Dispatch(ctx, req)
		c.settle(response.Classify[T](ex, opts))
	}()
	return c
}

// UploadStream is the progress-reporting variant of an upload. Progress
// yields monotonically non-decreasing fractions in [0, 1); the stream
// closing is the completion signal, so 1.0 is never emitted as a discrete
// element.
type UploadStream struct {
	progress  chan float64
	done      chan struct{}
	cancel    context.CancelFunc
	canceled  atomic.Bool
	published bool
	err       error
}

// Progress returns the fraction stream. It is closed on completion.
func (u *UploadStream) Progress() <-chan float64 {
	return u.progress
}

// Done is closed once the upload has settled.
func (u *UploadStream) Done() <-chan struct{} {
	return u.done
}

// Err blocks until the upload settles and returns its terminal error. A
// canceled upload yields context.Canceled.
func (u *UploadStream) Err() error {
	<-u.done
	if !u.published {
		return context.Canceled
	}
	return u.err
}

// Cancel aborts the upload.
func (u *UploadStream) Cancel() {
	u.canceled.Store(true)
	u.cancel()
}

// Canceled reports whether the upload was canceled before completing.
func (u *UploadStream) Canceled() bool {
	select {
	case <-u.done:
		return !u.published
	default:
		return false
	}
}

// UploadProgress uploads the file at filePath under formKey, reporting
// write progress as the body is sent.
func UploadProgress(ctx context.Context, s *Service, endpoint, filePath, formKey string) *UploadStream {
	ctx, cancel := context.WithCancel(ctx)
	u := &UploadStream{
		progress: make(chan float64, 16),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	settle := func(err error) {
		if !u.canceled.Load() {
			u.err = err
			u.published = true
		}
		close(u.progress)
		close(u.done)
	}

	form, err := codec.EncodeFormFile(filePath, formKey)
	if err != nil {
		cancel()
		settle(&request.UnserializableBodyError{Value: filePath, Err: err})
		return u
	}

	body := &progressReader{
		r:     bytes.NewReader(form.Bytes()),
		total: int64(form.Size()),
		emit: func(f float64) {
			select {
			case u.progress <- f:
			default:
			}
		},
	}

	sess, release := s.acquire()
	req, err := buildUpload(sess, s, endpoint, form, body)
	if err != nil {
		release()
		cancel()
		settle(err)
		return u
	}

	opts := s.classifyOpts("")
	go func() {
		defer release()
		defer cancel()

		if err := sess.limiter.Wait(ctx); err != nil {
			settle(&response.TransportError{Err: err})
			return
		}
		ex := sess.engine.Dispatch(ctx, req)
		if err, rejected := response.Reject(ex, opts); rejected {
			settle(err)
			return
		}
		settle(nil)
	}()
	return u
}

// buildUpload produces the multipart request for endpoint, substituting the
// form's boundary content type for the codec's default.
func buildUpload(sess *session, s *Service, endpoint string, form *codec.FormFile, body io.Reader) (*http.Request, error) {
	d := request.New(request.POST, request.Path(endpoint))
	req, err := request.Build(d, sess.cfg.BaseURL, s.enc, s.dec)
	if err != nil {
		return nil, err
	}
	sess.cfg.Headers.Apply(req.Header)

	req.Body = io.NopCloser(body)
	req.ContentLength = int64(form.Size())
	req.Header.Set(string(header.ContentType), form.ContentType())
	return req, nil
}

// progressReader reports cumulative fractions of total as the transport
// consumes the body.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	emit  func(float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.sent += int64(n)
		if f := float64(p.sent) / float64(p.total); f < 1 {
			p.emit(f)
		}
	}
	return n, err
}
