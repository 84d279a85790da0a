package core

import (
	"fmt"
	"strings"
)

// Field identifies a column of the food table.
type Field int

// Food table columns.
const (
	FieldID Field = iota
	FieldName
	FieldDate
	FieldTime
)

// AllFields is the column order used when no projection is requested.
var AllFields = []Field{FieldID, FieldName, FieldTime, FieldDate}

var fieldNames = map[Field]string{
	FieldID:   "id",
	FieldName: "name",
	FieldDate: "date",
	FieldTime: "time",
}

var fieldsByName = map[string]Field{
	"id":   FieldID,
	"name": FieldName,
	"date": FieldDate,
	"time": FieldTime,
}

// LookupField resolves a column name, ignoring case.
func LookupField(name string) (Field, bool) {
	f, ok := fieldsByName[strings.ToLower(name)]
	return f, ok
}

// String returns the column name.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Operator is a predicate comparison.
type Operator int

// Supported operators.
const (
	OpEq Operator = iota
	OpBetween
)

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "="
	case OpBetween:
		return "BETWEEN"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Predicate compares a column against a value.
//
// Value holds an int64 (id), a string (name), a Date, a Clock,
// or a ClockRange when Op is OpBetween.
type Predicate struct {
	Field Field
	Op    Operator
	Value any
}

// Eq builds an equality predicate.
func Eq(f Field, v any) Predicate {
	return Predicate{Field: f, Op: OpEq, Value: v}
}

// Between builds a range predicate over times of day.
func Between(f Field, r ClockRange) Predicate {
	return Predicate{Field: f, Op: OpBetween, Value: r}
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %v", p.Field, p.Op, p.Value)
}

// Conjunction is a list of predicates combined with AND.
// An empty conjunction matches every record.
type Conjunction []Predicate

// And returns a new conjunction with ps appended.
func (c Conjunction) And(ps ...Predicate) Conjunction {
	out := make(Conjunction, 0, len(c)+len(ps))
	out = append(out, c...)
	return append(out, ps...)
}

// MatchesAll reports whether the conjunction has no predicates.
func (c Conjunction) MatchesAll() bool {
	return len(c) == 0
}

func (c Conjunction) String() string {
	if len(c) == 0 {
		return "true"
	}
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return strings.Join(parts, " AND ")
}

// Direction is a sort order.
type Direction int

// Sort directions.
const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// SortKey orders results by one column.
type SortKey struct {
	Field     Field
	Direction Direction
}

// Unbounded is the Limit of a query without a row cap.
const Unbounded = -1

// Query describes which records to read and how to present them.
type Query struct {
	Where     Conjunction
	Sort      []SortKey
	Limit     int
	Returning []Field // empty means all columns
}

// Columns returns the projected columns, or AllFields when none were requested.
func (q Query) Columns() []Field {
	if len(q.Returning) == 0 {
		return AllFields
	}
	return q.Returning
}

// Value returns the value of f on food, typed for display and encoding.
func (f Food) Value(field Field) any {
	switch field {
	case FieldID:
		return f.ID
	case FieldName:
		return f.Name
	case FieldDate:
		return f.Date
	case FieldTime:
		return f.Time
	default:
		return nil
	}
}
