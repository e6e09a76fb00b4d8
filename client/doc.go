// Package client provides the HTTP executor used by the request
// builders, built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//		client.WithRequestID("X-Request-ID"),
//	)
//
// The same settings can be kept in a YAML file and applied with
// [LoadConfig] and [WithConfig]:
//
//	cfg, err := client.LoadConfig("http.yaml")
//	c, err := client.Build(client.WithConfig(cfg))
//
// # Executing Requests
//
// [Client.Do] sends a prepared *http.Request and hands back the raw
// response, tracing the exchange with the configured OpenTelemetry
// tracer. Most callers reach it indirectly through
// [github.com/adamwoolhether/httpreq/request].
//
// A Client is safe for concurrent use. [Client.Close] drops idle
// connections and should be called by whoever built the Client.
package client
