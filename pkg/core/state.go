package core

import "context"

// Store defines the record store operations used by the shell.
type Store interface {
	// Insert stores foods and returns their assigned ids in input order.
	Insert(ctx context.Context, foods ...Food) ([]int64, error)

	// Find returns the records matching q. Columns outside q.Columns() are left zero.
	Find(ctx context.Context, q Query) ([]Food, error)

	// Replace inserts food or overwrites the record with the same id.
	Replace(ctx context.Context, food Food) error

	// Delete removes the records matching where and returns how many were removed.
	Delete(ctx context.Context, where Conjunction) (int64, error)

	Close() error
}
