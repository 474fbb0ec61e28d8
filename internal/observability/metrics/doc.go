// Package metrics holds the Prometheus collectors that are not tied to the
// HTTP transport: resource and vote counters, error envelopes by kind, and
// database statement timings. They register with the default registry and
// are served on /metrics.
package metrics
