package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// Insert stores the entries in a single statement and returns their ids
// in input order.
func (s *SQLStore) Insert(ctx context.Context, foods ...core.Food) ([]int64, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	if len(foods) == 0 {
		return nil, nil
	}

	st := newStatement(s.dialect, `INSERT INTO food (name, "date", "time") VALUES `)
	for i, f := range foods {
		if i > 0 {
			st.write(", ")
		}
		st.write("(")
		st.bind(f.Name)
		st.write(", ")
		st.bind(f.Date.String())
		st.write(", ")
		st.bind(f.Time.String())
		st.write(")")
	}
	st.write(" RETURNING id")

	s.logger.Debug("inserting food", slog.Int("count", len(foods)), slog.String("sql", st.String()))

	rows, err := s.db.QueryContext(ctx, st.String(), st.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert food: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(foods))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan inserted id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to insert food: %w", err)
	}
	return ids, nil
}

// Find returns the entries matching q. Only the columns in q.Columns()
// are populated.
func (s *SQLStore) Find(ctx context.Context, q core.Query) ([]core.Food, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	fields := q.Columns()
	names := make([]string, len(fields))
	for i, f := range fields {
		c, err := column(f)
		if err != nil {
			return nil, err
		}
		names[i] = c
	}

	st := newStatement(s.dialect, "SELECT "+strings.Join(names, ", ")+" FROM food")
	if err := st.where(q.Where); err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	if err := st.orderBy(q.Sort); err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	st.limit(q.Limit)

	s.logger.Debug("finding food", slog.String("sql", st.String()), slog.Int("args", len(st.args)))

	rows, err := s.db.QueryContext(ctx, st.String(), st.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food: %w", err)
	}
	defer rows.Close()

	var foods []core.Food
	for rows.Next() {
		f, err := scanFood(rows, fields)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food: %w", err)
	}
	return foods, nil
}

func scanFood(rows *sql.Rows, fields []core.Field) (core.Food, error) {
	var (
		f          core.Food
		date, hhmm string
	)
	dest := make([]any, len(fields))
	for i, field := range fields {
		switch field {
		case core.FieldID:
			dest[i] = &f.ID
		case core.FieldName:
			dest[i] = &f.Name
		case core.FieldDate:
			dest[i] = &date
		case core.FieldTime:
			dest[i] = &hhmm
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return core.Food{}, fmt.Errorf("failed to scan food: %w", err)
	}

	var err error
	if date != "" {
		if f.Date, err = core.ParseISODate(strings.TrimSpace(date)); err != nil {
			return core.Food{}, fmt.Errorf("food %d: %w", f.ID, err)
		}
	}
	if hhmm != "" {
		if f.Time, err = core.ParseClock(strings.TrimSpace(hhmm)); err != nil {
			return core.Food{}, fmt.Errorf("food %d: %w", f.ID, err)
		}
	}
	return f, nil
}

// Replace writes f under its id, creating the row when it does not exist.
func (s *SQLStore) Replace(ctx context.Context, f core.Food) error {
	if s.db == nil {
		return ErrNotOpen
	}

	st := newStatement(s.dialect, `INSERT INTO food (id, name, "date", "time") VALUES (`)
	st.bind(f.ID)
	st.write(", ")
	st.bind(f.Name)
	st.write(", ")
	st.bind(f.Date.String())
	st.write(", ")
	st.bind(f.Time.String())
	st.write(`) ON CONFLICT (id) DO UPDATE SET name = excluded.name, "date" = excluded."date", "time" = excluded."time"`)

	s.logger.Debug("replacing food", slog.Int64("id", f.ID))

	if _, err := s.db.ExecContext(ctx, st.String(), st.args...); err != nil {
		return fmt.Errorf("failed to replace food %d: %w", f.ID, err)
	}
	return nil
}

// Delete removes the entries matching where and returns how many were
// removed. An empty conjunction matches every entry.
func (s *SQLStore) Delete(ctx context.Context, where core.Conjunction) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}

	st := newStatement(s.dialect, "DELETE FROM food")
	if err := st.where(where); err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	s.logger.Debug("deleting food", slog.String("where", where.String()))

	res, err := s.db.ExecContext(ctx, st.String(), st.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete food: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted food: %w", err)
	}
	return n, nil
}
