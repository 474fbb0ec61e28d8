// Package query builds parameterized PostgreSQL fragments (ORDER BY, WHERE,
// SET) from whitelisted identifiers. User input only ever reaches a statement
// as a positional argument.
package query

import "strconv"

// Args accumulates positional arguments and hands out their $N placeholders.
// The zero value is ready to use.
type Args struct {
	values []any
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the accumulated arguments in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// Len returns the number of accumulated arguments.
func (a *Args) Len() int {
	return len(a.values)
}
