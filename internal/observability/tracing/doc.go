// Package tracing wires OpenTelemetry into the server: Setup installs the
// SDK provider and W3C propagator, Middleware opens one server span per
// request named after its route, and StartClientSpan wraps database calls.
//
// With tracing disabled the provider samples nothing it starts itself, so
// spans cost little but X-Trace-Id is still issued for log correlation.
package tracing
