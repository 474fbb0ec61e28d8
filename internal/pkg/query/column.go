package query

import (
	"sort"

	"github.com/lib/pq"

	"nc-news/internal/apperror"
)

// Table is a table name known to the application.
type Table string

const (
	TableArticles Table = "articles"
	TableComments Table = "comments"
	TableTopics   Table = "topics"
	TableUsers    Table = "users"
)

// Ident returns the quoted table identifier.
func (t Table) Ident() string {
	return pq.QuoteIdentifier(string(t))
}

// Column is a column reference, optionally qualified by a table alias.
// Columns are only ever constructed from constants, never from request input.
type Column struct {
	Qualifier string
	Name      string
}

// Col returns an unqualified column.
func Col(name string) Column {
	return Column{Name: name}
}

// QCol returns a column qualified by alias.
func QCol(alias, name string) Column {
	return Column{Qualifier: alias, Name: name}
}

// Ident returns the quoted, optionally qualified identifier.
func (c Column) Ident() string {
	if c.Qualifier == "" {
		return pq.QuoteIdentifier(c.Name)
	}
	return pq.QuoteIdentifier(c.Qualifier) + "." + pq.QuoteIdentifier(c.Name)
}

// ColumnSet maps client-facing sort keys to the columns they select.
type ColumnSet map[string]Column

// Resolve returns the column for key or a BadRequest naming the sort_by query.
func (s ColumnSet) Resolve(key string) (Column, error) {
	col, ok := s[key]
	if !ok {
		return Column{}, apperror.BadRequest("Invalid sort_by query")
	}
	return col, nil
}

// Keys returns the accepted keys in lexical order.
func (s ColumnSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
