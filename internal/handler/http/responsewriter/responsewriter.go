// Package responsewriter records what a handler sent so the logging,
// metrics, tracing and recovery middleware can all read it afterwards.
package responsewriter

import "net/http"

// ResponseWriter remembers the status and body size written through it.
// Until the header goes out the status reads as 200, which is what
// net/http sends on the first Write.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written int
	sent    bool
}

// Wrap returns w unchanged when it is already a *ResponseWriter, so every
// middleware in the chain observes the same response.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the first status only. Repeat calls are ignored rather
// than forwarded, so net/http never logs a superfluous WriteHeader.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.sent {
		return
	}
	w.status, w.sent = code, true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

func (w *ResponseWriter) StatusCode() int { return w.status }

func (w *ResponseWriter) BytesWritten() int { return w.written }

// HeaderWritten reports whether the status line is out, after which an
// error envelope can no longer replace the response.
func (w *ResponseWriter) HeaderWritten() bool { return w.sent }

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
