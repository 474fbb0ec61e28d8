package query

import "strings"

// Op is the way an assignment combines its value with the current column value.
type Op int

const (
	// OpSet replaces the column value.
	OpSet Op = iota
	// OpIncrement adds the value to the current column value.
	OpIncrement
)

// Assignment is one column update in a SET list.
type Assignment struct {
	Column string
	Op     Op
	Value  any
}

// Set returns an OpSet assignment.
func Set(column string, value any) Assignment {
	return Assignment{Column: column, Op: OpSet, Value: value}
}

// Increment returns an OpIncrement assignment.
func Increment(column string, delta any) Assignment {
	return Assignment{Column: column, Op: OpIncrement, Value: delta}
}

// Patch is an ordered list of assignments plus the referential checks that
// have to succeed before they are applied.
type Patch struct {
	Assignments []Assignment
	Checks      []ExistenceCheck
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p.Assignments) == 0
}

// SetClause renders "SET a = $1, b = b + $2" registering values in args.
// It returns "" for an empty patch.
func (p Patch) SetClause(args *Args) string {
	if p.Empty() {
		return ""
	}
	parts := make([]string, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		col := Col(a.Column).Ident()
		switch a.Op {
		case OpIncrement:
			parts = append(parts, col+" = "+col+" + "+args.Add(a.Value))
		default:
			parts = append(parts, col+" = "+args.Add(a.Value))
		}
	}
	return "SET " + strings.Join(parts, ", ")
}
