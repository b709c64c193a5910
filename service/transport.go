package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptrace"
	"os"
	"time"

	"github.com/wesleyorama2/parry/response"
)

// Engine is the external collaborator that performs the actual network I/O.
// The service never manages sockets, TLS or redirects itself.
type Engine interface {
	// Dispatch executes req and returns the raw exchange with the body
	// fully read.
	Dispatch(ctx context.Context, req *http.Request) response.Exchange

	// DispatchDownload executes req, streaming the body to a temporary
	// file, and returns its path alongside the exchange metadata.
	DispatchDownload(ctx context.Context, req *http.Request) (string, response.Exchange)
}

// HTTPEngine dispatches requests on a net/http client with per-request
// timing captured via httptrace. Connection reuse, redirect following and
// cookie storage are the underlying client's concern.
type HTTPEngine struct {
	client *http.Client
}

// NewHTTPEngine returns an engine with the given total request timeout.
func NewHTTPEngine(timeout time.Duration) *HTTPEngine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPEngine{client: &http.Client{Timeout: timeout}}
}

// Dispatch implements Engine.
func (e *HTTPEngine) Dispatch(ctx context.Context, req *http.Request) response.Exchange {
	var timing response.Timing
	start := time.Now()

	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			timing.TimeToFirstByte = time.Since(start)
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(ctx, trace))

	resp, err := e.client.Do(req)
	if err != nil {
		return response.Exchange{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	timing.Total = time.Since(start)
	if err != nil {
		return response.Exchange{StatusCode: resp.StatusCode, Header: resp.Header, Err: err, Timing: timing}
	}
	return response.Exchange{Body: body, StatusCode: resp.StatusCode, Header: resp.Header, Timing: timing}
}

// DispatchDownload implements Engine.
func (e *HTTPEngine) DispatchDownload(ctx context.Context, req *http.Request) (string, response.Exchange) {
	start := time.Now()

	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return "", response.Exchange{Err: err}
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "parry-download-*")
	if err != nil {
		return "", response.Exchange{StatusCode: resp.StatusCode, Header: resp.Header, Err: err}
	}
	_, err = io.Copy(tmp, resp.Body)
	tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return "", response.Exchange{StatusCode: resp.StatusCode, Header: resp.Header, Err: err}
	}

	ex := response.Exchange{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Timing:     response.Timing{Total: time.Since(start)},
	}
	return tmp.Name(), ex
}
