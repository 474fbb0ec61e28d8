// Package respond writes JSON responses and the API error envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"nc-news/internal/apperror"
	"nc-news/internal/observability/logging"
	"nc-news/internal/observability/metrics"
)

// Envelope is the body of every error response.
type Envelope struct {
	Msg     string `json:"msg" example:"Bad request"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"Invalid sort_by query"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error normalizes err and writes the matching envelope.
// Internal errors are logged with secrets masked and never expose details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	appErr := apperror.Normalize(err)
	metrics.RecordAPIError(appErr.Kind.String())

	env := Envelope{Msg: appErr.Message(), Code: appErr.Status()}
	if appErr.Kind == apperror.KindInternal {
		logging.FromContext(r.Context()).Error("internal server error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", SanitizeError(err)))
	} else {
		env.Details = appErr.Details
	}

	JSON(w, env.Code, env)
}
