package state

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// columns maps fields to their quoted column names.
var columns = map[core.Field]string{
	core.FieldID:   "id",
	core.FieldName: "name",
	core.FieldDate: `"date"`,
	core.FieldTime: `"time"`,
}

func column(f core.Field) (string, error) {
	c, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unknown field %d", f)
	}
	return c, nil
}

// statement accumulates SQL text and its bind arguments.
type statement struct {
	d    dialect
	sql  strings.Builder
	args []any
}

func newStatement(d dialect, prefix string) *statement {
	st := &statement{d: d}
	st.sql.WriteString(prefix)
	return st
}

func (st *statement) write(s string) {
	st.sql.WriteString(s)
}

// bind records v and writes its placeholder.
func (st *statement) bind(v any) {
	st.args = append(st.args, v)
	st.sql.WriteString(st.d.placeholder(len(st.args)))
}

func (st *statement) String() string {
	return st.sql.String()
}

// encode converts a predicate value into its stored representation.
func encode(f core.Field, v any) (any, error) {
	switch f {
	case core.FieldID:
		if id, ok := v.(int64); ok {
			return id, nil
		}
	case core.FieldName:
		if name, ok := v.(string); ok {
			return name, nil
		}
	case core.FieldDate:
		if d, ok := v.(core.Date); ok {
			return d.String(), nil
		}
	case core.FieldTime:
		if c, ok := v.(core.Clock); ok {
			return c.String(), nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) does not fit field %s", v, v, f)
}

// where writes a WHERE clause for the conjunction. Nothing is written
// when it is empty.
func (st *statement) where(c core.Conjunction) error {
	for i, p := range c {
		if i == 0 {
			st.write(" WHERE ")
		} else {
			st.write(" AND ")
		}
		if err := st.predicate(p); err != nil {
			return err
		}
	}
	return nil
}

func (st *statement) predicate(p core.Predicate) error {
	col, err := column(p.Field)
	if err != nil {
		return err
	}

	switch p.Op {
	case core.OpEq:
		v, err := encode(p.Field, p.Value)
		if err != nil {
			return err
		}
		st.write(col + " = ")
		st.bind(v)
	case core.OpBetween:
		r, ok := p.Value.(core.ClockRange)
		if !ok || p.Field != core.FieldTime {
			return fmt.Errorf("between is only supported on time, got %s", p)
		}
		st.write(col + " BETWEEN ")
		st.bind(r.Low.String())
		st.write(" AND ")
		st.bind(r.High.String())
	default:
		return fmt.Errorf("unsupported operator in %s", p)
	}
	return nil
}

func (st *statement) orderBy(keys []core.SortKey) error {
	for i, k := range keys {
		if i == 0 {
			st.write(" ORDER BY ")
		} else {
			st.write(", ")
		}
		col, err := column(k.Field)
		if err != nil {
			return err
		}
		st.write(col)
		if k.Direction == core.Desc {
			st.write(" DESC")
		} else {
			st.write(" ASC")
		}
	}
	return nil
}

func (st *statement) limit(n int) {
	if n == core.Unbounded || n < 0 {
		return
	}
	st.write(" LIMIT ")
	st.bind(int64(n))
}
