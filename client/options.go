package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/httpreq/client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
	requestIDHeader   string
	curlDebug         bool
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		c.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracer injects the given tracer into the [Client]. A no-op tracer
// is used otherwise.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}

// WithRequestID stamps every outgoing request lacking the given header
// with a random UUID under that header, e.g. "X-Request-ID".
func WithRequestID(header string) Option {
	return func(c *options) error {
		if header == "" {
			return errors.New("request id header must not be empty")
		}
		c.requestIDHeader = http.CanonicalHeaderKey(header)
		return nil
	}
}

// WithCurlDebug logs every outgoing request as an equivalent curl
// command at debug level.
func WithCurlDebug() Option {
	return func(c *options) error {
		c.curlDebug = true
		return nil
	}
}

// WithConfig applies the settings of a file-based [Config].
// Zero-valued fields leave the corresponding setting untouched.
func WithConfig(cfg Config) Option {
	return func(c *options) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		if cfg.Timeout > 0 {
			d := cfg.Timeout
			c.timeout = &d
		}
		if cfg.UserAgent != "" {
			c.userAgent = cfg.UserAgent
		}
		if cfg.Throttle != nil {
			c.throttle = &throttle.Config{RPS: cfg.Throttle.RPS, Burst: cfg.Throttle.Burst}
		}
		if cfg.NoFollowRedirects {
			c.noFollowRedirects = true
		}
		if cfg.RequestIDHeader != "" {
			c.requestIDHeader = http.CanonicalHeaderKey(cfg.RequestIDHeader)
		}
		if cfg.CurlDebug {
			c.curlDebug = true
		}

		return nil
	}
}

// idleCloser matches transports able to drop idle connections.
type idleCloser interface {
	CloseIdleConnections()
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

func (ua userAgent) CloseIdleConnections() {
	if ic, ok := ua.base.(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// requestID is an http.RoundTripper, stamping a UUID on requests
// that don't already carry one.
type requestID struct {
	header string
	base   http.RoundTripper
}

func (rid requestID) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(rid.header) != "" {
		return rid.base.RoundTrip(r)
	}

	cpy := r.Clone(r.Context())
	cpy.Header.Set(rid.header, uuid.NewString())
	return rid.base.RoundTrip(cpy)
}

func (rid requestID) CloseIdleConnections() {
	if ic, ok := rid.base.(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}
