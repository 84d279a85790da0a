// Package state persists food entries in a SQL database.
//
// SQLStore implements core.Store on top of database/sql. Two dialects are
// supported: SQLite through modernc.org/sqlite (the default, pure Go) and
// PostgreSQL through pgx's database/sql driver. The schema is managed by
// goose migrations embedded in the binary.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotOpen is returned by every operation on a store without a connection.
var ErrNotOpen = errors.New("database not opened")

// ErrUnknownDriver is returned when a driver name is not supported.
var ErrUnknownDriver = errors.New("unknown database driver")

// dialect captures what differs between the supported databases.
type dialect struct {
	name       string // name used in configuration
	sqlDriver  string // database/sql driver name
	goose      string // goose dialect
	migrations string // directory inside the embedded migrations FS
	numbered   bool   // $1, $2... instead of ?
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name:       DriverSQLite,
		sqlDriver:  "sqlite",
		goose:      "sqlite3",
		migrations: "migrations/sqlite",
	},
	DriverPostgres: {
		name:       DriverPostgres,
		sqlDriver:  "pgx",
		goose:      "postgres",
		migrations: "migrations/postgres",
		numbered:   true,
	},
}

func lookupDialect(driver string) (dialect, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return d, nil
}

// placeholder returns the bind marker for the n-th argument (1-based).
func (d dialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SQLStore implements core.Store using database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
}

var _ core.Store = (*SQLStore)(nil)

// NewSQLStore creates a store that is not yet connected.
// A nil logger discards all output.
func NewSQLStore(logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{logger: logger}
}

// Open connects to the database. For SQLite the dsn is a file path and
// ":memory:" opens a private in-memory database.
func (s *SQLStore) Open(ctx context.Context, driver, dsn string) error {
	d, err := lookupDialect(driver)
	if err != nil {
		return err
	}

	if d.name == DriverSQLite && dsn != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	// SQLite allows a single writer, and every connection to ":memory:"
	// would see its own empty database.
	if d.name == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s database: %w", d.name, err)
	}

	s.db = db
	s.dialect = d
	s.logger.Debug("database opened", slog.String("driver", d.name))
	return nil
}

// Attach uses an existing connection instead of opening one.
func (s *SQLStore) Attach(db *sql.DB, driver string) error {
	d, err := lookupDialect(driver)
	if err != nil {
		return err
	}
	s.db = db
	s.dialect = d
	return nil
}

// Driver returns the configured driver name.
func (s *SQLStore) Driver() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
