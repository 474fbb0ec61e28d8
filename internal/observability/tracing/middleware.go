package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"nc-news/internal/handler/http/requestid"
	"nc-news/internal/handler/http/responsewriter"
)

// TraceIDHeader exposes the server span's trace id to clients and to the
// logging middleware.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any W3C trace
// context the client sent. The span is named after the matched route
// pattern ("GET /articles/{article_id}") so ids do not explode span
// cardinality; unmatched requests keep "<METHOD> unmatched".
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		attrs := []attribute.KeyValue{
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
		}
		if id := requestid.FromContext(ctx); id != "" {
			attrs = append(attrs, attribute.String("http.request_id", id))
		}
		ctx, span := GetTracer().Start(ctx, r.Method+" unmatched",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())
		rw := responsewriter.Wrap(w)

		// ServeMux writes the matched pattern into the request it receives.
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		if r.Pattern != "" {
			span.SetName(r.Pattern)
			span.SetAttributes(attribute.String("http.route", r.Pattern))
		}
		status := rw.StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
