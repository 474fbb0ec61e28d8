// Package payload decodes JSON request bodies into the typed inputs of the
// resource handlers.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"nc-news/internal/apperror"
)

// Decode reads the JSON object in r's body into v. An empty body leaves v at
// its zero value; malformed JSON is a BadRequest.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.BadRequest("Request body too large")
		}
		return &apperror.Error{Kind: apperror.KindBadRequest, Details: "Invalid request body", Err: err}
	}
	return nil
}

// IncVotes parses an optional inc_votes property. An absent property yields
// nil. Any JSON number with an integral value inside the INT votes range is
// accepted, so 1.0 and 1e2 count; everything else is a BadRequest.
func IncVotes(raw json.RawMessage) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	invalid := apperror.BadRequest("Invalid inc_votes: must be an integer")

	tok := string(bytes.TrimSpace(raw))
	if n, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return &n, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, invalid
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, invalid
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, invalid
	}
	n := int64(f)
	return &n, nil
}
