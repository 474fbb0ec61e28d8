package pagination

import (
	"math"
	"strconv"

	"nc-news/internal/apperror"
	"nc-news/internal/pkg/query"
)

// unboundedTokens are limit values that disable the row cap entirely.
var unboundedTokens = map[string]struct{}{
	"0":        {},
	"infinity": {},
	"none":     {},
}

// Window describes the slice of an ordered result set to return.
type Window struct {
	Limit     int64
	Offset    int64
	Page      int
	Unbounded bool
	// Empty is set for pages that can never hold rows (page <= 0 or an
	// offset beyond int64). Such windows are valid, not errors.
	Empty bool
}

// Resolve validates the raw limit and page tokens.
//
// Rules, in order:
//  1. A sentinel limit ("0", "infinity", "none") yields an unbounded window.
//  2. Both tokens must be base-10 integers.
//  3. A negative limit is rejected.
//  4. page <= 0 yields an empty window.
//  5. Otherwise the window covers rows [limit*(page-1), limit*page).
func Resolve(limitToken, pageToken string) (Window, error) {
	if _, ok := unboundedTokens[limitToken]; ok {
		return Window{Unbounded: true, Page: 1}, nil
	}

	limit, err := strconv.Atoi(limitToken)
	if err != nil {
		return Window{}, apperror.BadRequest("Invalid limit: must be a whole number")
	}
	page, err := strconv.Atoi(pageToken)
	if err != nil {
		return Window{}, apperror.BadRequest("Invalid page: must be an integer")
	}
	if limit < 0 {
		return Window{}, apperror.BadRequest("Limit must be non-negative")
	}
	if page <= 0 {
		return Window{Limit: int64(limit), Page: page, Empty: true}, nil
	}

	l, p := int64(limit), int64(page-1)
	if p > 0 && l > math.MaxInt64/p {
		return Window{Limit: l, Page: page, Empty: true}, nil
	}
	return Window{Limit: l, Offset: l * p, Page: page}, nil
}

// Clause renders the LIMIT/OFFSET clause, registering values in args.
// Unbounded windows render nothing; empty windows render "LIMIT 0".
func (w Window) Clause(args *query.Args) string {
	switch {
	case w.Unbounded:
		return ""
	case w.Empty:
		return "LIMIT 0"
	default:
		return "LIMIT " + args.Add(w.Limit) + " OFFSET " + args.Add(w.Offset)
	}
}
