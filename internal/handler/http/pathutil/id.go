// Package pathutil parses path parameters and folds dynamic paths into
// route templates for metric labels.
package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a path segment is not a base-10 integer that
// fits the INT id columns.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses an id path value such as r.PathValue("article_id").
// Zero and negative ids parse fine; they simply match no row.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
