// Package observability groups the logging, metrics and tracing packages
// used by the API server. It has no code of its own.
package observability
