// Package service orchestrates typed HTTP calls: it builds transport
// requests from declarative descriptors, dispatches them on an owned
// session, classifies the raw results, and publishes each call's single
// terminal event on a cancelable handle.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/wesleyorama2/parry/codec"
	"github.com/wesleyorama2/parry/header"
	"github.com/wesleyorama2/parry/metrics"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/response"
)

// Config holds the per-session settings of a service.
type Config struct {
	BaseURL string
	Headers header.Header
	Timeout time.Duration

	// RateLimit caps dispatches per second; 0 means unlimited.
	RateLimit float64
	Burst     int
}

func (c Config) clone() Config {
	out := c
	out.Headers = c.Headers.Clone()
	return out
}

// session is one generation of transport configuration. In-flight requests
// are tracked so reconfiguration can drain them.
type session struct {
	cfg     Config
	engine  Engine
	limiter *rate.Limiter
	wg      sync.WaitGroup
}

func newSession(cfg Config, engine Engine) *session {
	if engine == nil {
		engine = NewHTTPEngine(cfg.Timeout)
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &session{cfg: cfg, engine: engine, limiter: limiter}
}

// Service owns one transport session, one base URL, one codec pair and an
// optional error payload type. One Service per backend the application
// talks to; it is never copied.
type Service struct {
	mu       sync.RWMutex
	reconfMu sync.Mutex
	sess     *session

	enc        codec.Encoder
	dec        codec.Decoder
	errPayload func() error
	engine     Engine

	log         zerolog.Logger
	rec         *metrics.Recorder
	downloadDir string
}

// Option configures a Service.
type Option func(*Service)

// WithCodec sets both the encoder and decoder.
func WithCodec(c codec.Codec) Option {
	return func(s *Service) {
		s.enc = c
		s.dec = c
	}
}

// WithEncoder sets the request body encoder.
func WithEncoder(e codec.Encoder) Option {
	return func(s *Service) { s.enc = e }
}

// WithDecoder sets the response body decoder.
func WithDecoder(d codec.Decoder) Option {
	return func(s *Service) { s.dec = d }
}

// WithErrorPayload configures the type server error bodies decode into.
// The factory returns a fresh value per classification; the decoded value
// is surfaced as the payload of a ServerError.
func WithErrorPayload(factory func() error) Option {
	return func(s *Service) { s.errPayload = factory }
}

// WithEngine injects a transport engine, replacing the net/http default.
func WithEngine(e Engine) Option {
	return func(s *Service) { s.engine = e }
}

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics attaches a latency recorder fed after every terminal event.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) { s.rec = r }
}

// WithDownloadDir sets where downloaded files are relocated. Defaults to
// the system temporary directory.
func WithDownloadDir(dir string) Option {
	return func(s *Service) { s.downloadDir = dir }
}

// New creates a service for one backend.
func New(cfg Config, opts ...Option) *Service {
	s := &Service{
		enc: codec.JSON{},
		dec: codec.JSON{},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.Headers == nil {
		cfg.Headers = header.Header{}
	}
	s.sess = newSession(cfg, s.engine)
	return s
}

// Reconfigure drains the current session, then installs a new one built
// from a mutated copy of its configuration. Requests already in flight
// finish on the old session; requests issued after Reconfigure returns
// observe the new one; requests issued during the swap wait for it.
// Concurrent Reconfigure calls serialize.
func (s *Service) Reconfigure(mutate func(*Config)) {
	s.reconfMu.Lock()
	defer s.reconfMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.sess
	// In-flight calls hold their session reference and never retake s.mu,
	// so waiting here cannot deadlock.
	old.wg.Wait()

	cfg := old.cfg.clone()
	mutate(&cfg)
	s.sess = newSession(cfg, s.engine)
}

// acquire pins the current session for one call. The returned release must
// be called when the call settles.
func (s *Service) acquire() (*session, func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sess
	sess.wg.Add(1)
	return sess, func() { sess.wg.Done() }
}

func (s *Service) classifyOpts(nestingKey string) response.Options {
	return response.Options{
		Decoder:      s.dec,
		ErrorPayload: s.errPayload,
		NestingKey:   nestingKey,
	}
}

// run is the single orchestration path every call goes through: build,
// dispatch, classify, settle. Build errors fail fast, before any network
// activity.
func run[T any](ctx context.Context, s *Service, d request.Descriptor, classify func(response.Exchange, response.Options) response.Outcome[T]) *Call[T] {
	ctx, cancel := context.WithCancel(ctx)
	c := newCall[T](cancel)

	sess, release := s.acquire()

	req, err := request.Build(d, sess.cfg.BaseURL, s.enc, s.dec)
	if err != nil {
		release()
		cancel()
		c.settle(response.Failure[T](err))
		return c
	}
	sess.cfg.Headers.Apply(req.Header)

	opts := s.classifyOpts(d.NestingKey())
	go func() {
		defer release()
		defer cancel()

		start := time.Now()
		if err := sess.limiter.Wait(ctx); err != nil {
			c.settle(response.Failure[T](&response.TransportError{Err: err}))
			return
		}

		ex := sess.engine.Dispatch(ctx, req)
		out := classify(ex, opts)
		latency := time.Since(start)

		if s.rec != nil {
			s.rec.Record(string(d.Method()), latency, out.Err() != nil)
		}
		s.log.Debug().
			Str("method", string(d.Method())).
			Str("url", req.URL.String()).
			Int("status", ex.StatusCode).
			Dur("latency", latency).
			Msg("request completed")

		c.settle(out)
	}()
	return c
}
