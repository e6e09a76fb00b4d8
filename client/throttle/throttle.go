package throttle

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// NewRoundTripper returns an http.RoundTripper that throttles outbound requests
// using a token bucket rate limiter. logFn lazily resolves the logger at request
// time, making option ordering irrelevant. A nil-returning logFn disables the
// wait logging.
func NewRoundTripper(cfg Config, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	t := &roundTripper{
		cfg:     cfg,
		limiter: cfg.limiter(),
		next:    next,
		logFn:   logFn,
	}

	return t, nil
}

func (t *roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	var waited time.Duration
	logger := t.logFn()
	if logger != nil && t.limiter.Tokens() < 1 { // Peek only, Wait takes the token.
		logger.Info("throttle tokens exhausted", "rate", t.cfg.RPS, "burst", t.cfg.Burst, "method", r.Method, "host", r.URL.Host, "path", r.URL.Path)

		defer func() {
			logger.Info("throttle wait complete", "waited", waited.String(), "rate", t.cfg.RPS, "burst", t.cfg.Burst)
		}()
	}

	start := time.Now()

	err := t.limiter.Wait(ctx)
	waited = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}

// CloseIdleConnections forwards to the wrapped transport when it supports it.
func (t *roundTripper) CloseIdleConnections() {
	type idleCloser interface{ CloseIdleConnections() }
	if ic, ok := t.next.(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}
