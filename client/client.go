// Package client wraps a std-lib *http.Client as the executor behind
// the request builders in [github.com/adamwoolhether/httpreq/request].
package client

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/moul/http2curl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/httpreq/client/throttle"
)

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c         *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	curlDebug bool
}

// Build instantiates a Client. Unless WithClient or WithTransport is given,
// the Client gets its own clone of [http.DefaultTransport], so closing it
// never touches connections shared with other clients.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		c:         &http.Client{},
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("no-op tracer"),
		curlDebug: opts.curlDebug,
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if opts.requestIDHeader != "" {
		transport = requestID{header: opts.requestIDHeader, base: transport}
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Do sends req and returns the raw response. The caller owns the response
// body. Any status code is returned as-is; deciding what counts as a failure
// is left to the caller's result extraction.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "httpreq."+req.Method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.Redacted()),
	)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	if c.curlDebug {
		if cmd, err := http2curl.GetCurlCommand(req); err == nil {
			c.logger.Debug("outgoing request", "curl", cmd.String())
		} else {
			c.logger.Error("rendering curl command", "error", err)
		}
	}

	resp, err := c.c.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("exec http do: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.logger.Debug("request complete", "method", req.Method, "url", req.URL.Redacted(), "status", resp.StatusCode)

	return resp, nil
}

// Logger returns the logger the Client was built with.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close releases idle connections held by the Client's transport.
// In-flight requests are unaffected. It is safe to call more than once.
func (c *Client) Close() error {
	c.c.CloseIdleConnections()
	return nil
}
