package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config sizes the token bucket: RPS tokens are added per second, up to
// Burst tokens in reserve.
type Config struct {
	RPS   int
	Burst int
}

func (cfg Config) check() error {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustNotBeZero)
	}

	return nil
}

func (cfg Config) limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
}

// roundTripper waits on the limiter before handing each request to next.
type roundTripper struct {
	cfg     Config
	limiter *rate.Limiter
	next    http.RoundTripper
	logFn   func() *slog.Logger
}
