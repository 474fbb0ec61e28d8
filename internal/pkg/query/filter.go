package query

import "strings"

// ExistenceCheck names a value that must be present in Table.Column before a
// statement depending on it runs.
type ExistenceCheck struct {
	Table  Table
	Column string
	Value  any
}

// Filter is an optional equality condition on the primary entity whose value
// refers to a row in another table. A nil Value leaves the filter inactive.
type Filter struct {
	Value    *string
	Table    Table
	Column   string
	Filtered Column
}

// Predicate is the combined WHERE clause of the active filters together with
// the existence checks that must pass before it is used.
type Predicate struct {
	Conditions []string
	Checks     []ExistenceCheck
}

// BuildFilters registers each active filter's value in args and returns the
// AND-ed predicate. With no active filter the predicate is empty.
func BuildFilters(filters []Filter, args *Args) Predicate {
	var p Predicate
	for _, f := range filters {
		if f.Value == nil {
			continue
		}
		p.Conditions = append(p.Conditions, f.Filtered.Ident()+" = "+args.Add(*f.Value))
		p.Checks = append(p.Checks, ExistenceCheck{Table: f.Table, Column: f.Column, Value: *f.Value})
	}
	return p
}

// Empty reports whether no filter is active.
func (p Predicate) Empty() bool {
	return len(p.Conditions) == 0
}

// Where renders "WHERE a AND b", or "" when the predicate is empty.
func (p Predicate) Where() string {
	if p.Empty() {
		return ""
	}
	return "WHERE " + strings.Join(p.Conditions, " AND ")
}
