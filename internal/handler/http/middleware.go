package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"nc-news/internal/apperror"
	"nc-news/internal/handler/http/requestid"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/handler/http/responsewriter"
	"nc-news/internal/observability/logging"
	"nc-news/internal/observability/tracing"
)

// Logging writes one "request completed" line per request, at error level
// for 5xx responses. The line carries the request and trace ids; handlers
// further in log through logging.FromContext and get the request id too.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := logging.WithLogger(r.Context(), logging.WithRequestID(r.Context(), logger))
			r = r.WithContext(ctx)

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			reqID := requestid.FromContext(r.Context())
			// The server span starts further in; its id comes back on the response.
			traceID := wrapped.Header().Get(tracing.TraceIDHeader)
			if traceID == "" {
				traceID = trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()
			}
			duration := time.Since(start)

			level := slog.LevelInfo
			if wrapped.StatusCode() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", reqID),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns a panic into the 500 envelope.
// When the handler already sent its header the response is left as is.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := responsewriter.Wrap(w)
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					if !wrapped.HeaderWritten() {
						respond.Error(wrapped, r, apperror.Internal(fmt.Errorf("panic: %v", rec)))
					}
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}

// LimitRequestBody returns middleware that caps the size of request bodies.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter is a per-client token bucket limiter. Clients are keyed by IP
// and kept in a bounded LRU table; the least recently seen client is evicted
// when the table is full.
type RateLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *rate.Limiter]
	rps     rate.Limit
	burst   int
	proxies []netip.Prefix
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst, remembering at most maxClients clients. Forwarding headers are
// read only from peers inside trustedProxies; with none, every client is keyed
// by its connection address.
func NewRateLimiter(rps float64, burst, maxClients int, trustedProxies ...netip.Prefix) (*RateLimiter, error) {
	clients, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, fmt.Errorf("NewRateLimiter: %w", err)
	}
	return &RateLimiter{clients: clients, rps: rate.Limit(rps), burst: burst, proxies: trustedProxies}, nil
}

// Limit rejects requests over the client's budget with 429 and Retry-After.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lim := rl.limiter(clientIP(r, rl.proxies))

		res := lim.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			respond.JSON(w, http.StatusTooManyRequests, respond.Envelope{
				Msg:  "Too many requests",
				Code: http.StatusTooManyRequests,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of clients currently tracked.
func (rl *RateLimiter) Clients() int {
	return rl.clients.Len()
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lim, ok := rl.clients.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.clients.Add(key, lim)
	return lim
}

// clientIP keys a request by its peer address. Only when the peer is a
// trusted proxy are X-Forwarded-For and then X-Real-IP consulted.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil || !inPrefixes(trusted, addr) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip, ok := forwardedClient(xff, trusted); ok {
			return ip
		}
	}
	if xri, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return xri.Unmap().String()
	}
	return addr.Unmap().String()
}

// forwardedClient walks the chain from the nearest hop and returns the first
// address that is not a trusted proxy. Any unparseable hop voids the header.
func forwardedClient(xff string, trusted []netip.Prefix) (string, bool) {
	hops := strings.Split(xff, ",")
	var outermost netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			return "", false
		}
		addr = addr.Unmap()
		if !inPrefixes(trusted, addr) {
			return addr.String(), true
		}
		outermost = addr
	}
	return outermost.String(), outermost.IsValid()
}

func inPrefixes(prefixes []netip.Prefix, addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
