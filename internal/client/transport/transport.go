package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/metrics"
	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// RequestIDHeader carries one id per logical call, shared by its attempts.
const RequestIDHeader = "X-Request-ID"

// Config bounds the retry loop.
type Config struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

// DefaultConfig is 5 attempts with waits of 1, 2, 4 and 5 seconds.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    5,
		BaseDelay:      time.Second,
		MaxDelay:       5 * time.Second,
		RequestTimeout: 10 * time.Second,
	}
}

type Transport struct {
	client  *http.Client
	cfg     Config
	log     logging.Logger
	metrics metrics.Recorder
	newID   func() string
}

type Option func(*Transport)

func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.client = c }
}

func WithLogger(l logging.Logger) Option {
	return func(t *Transport) { t.log = l }
}

func WithMetrics(m metrics.Recorder) Option {
	return func(t *Transport) { t.metrics = m }
}

func New(cfg Config, opts ...Option) *Transport {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultConfig().BaseDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}

	t := &Transport{
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		cfg:     cfg,
		log:     logging.Discard(),
		metrics: metrics.Nop{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the effective settings.
func (t *Transport) Config() Config { return t.cfg }

// Backoff returns a fresh schedule yielding the MaxAttempts-1 waits of one
// logical call.
func (t *Transport) Backoff() retry.Backoff {
	b := retry.NewExponential(t.cfg.BaseDelay)
	b = retry.WithCappedDuration(t.cfg.MaxDelay, b)
	return retry.WithMaxRetries(uint64(t.cfg.MaxAttempts-1), b)
}

// Send performs req, retrying failures as described in the package doc.
// check may be nil, in which case DefaultCheck is used. On success the
// caller owns the response body.
func (t *Transport) Send(ctx context.Context, req *http.Request, check CheckFunc) (*http.Response, error) {
	if check == nil {
		check = DefaultCheck
	}

	id := t.newID()
	log := t.log.With("request_id", id, "method", req.Method, "url", req.URL.String())

	attempts := 0
	schedule := t.Backoff()
	observed := retry.BackoffFunc(func() (time.Duration, bool) {
		d, stop := schedule.Next()
		if !stop {
			t.metrics.RecordRetryDelay(d)
			log.Debug(ctx, "retrying", "attempt", attempts+1, "delay", d)
		}
		return d, stop
	})

	var resp *http.Response
	err := retry.Do(ctx, observed, func(ctx context.Context) error {
		attempts++
		r, err := t.attempt(ctx, req, id)
		if err != nil {
			log.Warn(ctx, "attempt failed", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		if cerr := check(r); cerr != nil {
			discard(r)
			t.metrics.RecordAttempt(req.Method, false)
			if IsPermanent(cerr) {
				log.Debug(ctx, "permanent failure", "attempt", attempts, "status", r.StatusCode)
				return cerr
			}
			log.Warn(ctx, "attempt failed", "attempt", attempts, "status", r.StatusCode, "error", cerr)
			return retry.RetryableError(cerr)
		}
		t.metrics.RecordAttempt(req.Method, true)
		resp = r
		return nil
	})

	switch {
	case err == nil:
		return resp, nil
	case IsPermanent(err):
		return nil, unwrapPermanent(err)
	}

	if ctx.Err() == nil {
		t.metrics.RecordExhausted(req.Method)
		log.Error(ctx, "retries exhausted", "attempts", attempts, "error", err)
	}
	return nil, &TransportError{Attempts: attempts, Err: err}
}

// SendOnce performs exactly one attempt. A network failure is returned as a
// TransportError; a check failure is returned as is.
func (t *Transport) SendOnce(ctx context.Context, req *http.Request, check CheckFunc) (*http.Response, error) {
	if check == nil {
		check = DefaultCheck
	}

	id := t.newID()
	log := t.log.With("request_id", id, "method", req.Method, "url", req.URL.String())

	r, err := t.attempt(ctx, req, id)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &TransportError{Attempts: 1, Err: err}
	}
	if cerr := check(r); cerr != nil {
		discard(r)
		t.metrics.RecordAttempt(req.Method, false)
		log.Debug(ctx, "request rejected", "status", r.StatusCode, "error", cerr)
		return nil, unwrapPermanent(cerr)
	}
	t.metrics.RecordAttempt(req.Method, true)
	return r, nil
}

func (t *Transport) attempt(ctx context.Context, req *http.Request, id string) (*http.Response, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	r.Header.Set(RequestIDHeader, id)

	start := time.Now()
	resp, err := t.client.Do(r)
	t.metrics.RecordLatency(time.Since(start))
	if err != nil {
		t.metrics.RecordAttempt(req.Method, false)
		return nil, err
	}
	t.metrics.RecordHTTPStatus(resp.StatusCode)
	return resp, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// IsUnavailable reports whether err came from an exhausted or unreachable
// transport.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
