package query

import (
	"strings"

	"nc-news/internal/apperror"
)

// Direction is a validated sort direction keyword.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ResolveOrder accepts "asc" or "desc" in any letter case.
func ResolveOrder(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", apperror.BadRequest("Invalid order query")
}

// Sort is a resolved ORDER BY specification.
type Sort struct {
	Column    Column
	Direction Direction
	// TieBreak is appended when it differs from Column so pages are stable.
	TieBreak Column
}

// ResolveSort validates both halves of a sort_by/order pair against set.
func ResolveSort(set ColumnSet, sortBy, order string, tieBreak Column) (Sort, error) {
	col, err := set.Resolve(sortBy)
	if err != nil {
		return Sort{}, err
	}
	dir, err := ResolveOrder(order)
	if err != nil {
		return Sort{}, err
	}
	return Sort{Column: col, Direction: dir, TieBreak: tieBreak}, nil
}

// Clause renders the ORDER BY clause.
func (s Sort) Clause() string {
	clause := "ORDER BY " + s.Column.Ident() + " " + string(s.Direction)
	if s.TieBreak.Name != "" && s.TieBreak != s.Column {
		clause += ", " + s.TieBreak.Ident() + " " + string(s.Direction)
	}
	return clause
}
