package config

import (
	"fmt"

	"github.com/leapstack-labs/monhealth/internal/cli/output"
	"github.com/leapstack-labs/monhealth/internal/state"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Driver {
	case state.DriverSQLite:
		if c.Database == "" {
			return fmt.Errorf("database is required for the sqlite driver")
		}
	case state.DriverPostgres:
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("%w: %q (expected %s or %s)", state.ErrUnknownDriver, c.Driver, state.DriverSQLite, state.DriverPostgres)
	}

	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}

	if c.Insert.MaxNameLength < 1 {
		return fmt.Errorf("insert.max_name_length must be positive, got %d", c.Insert.MaxNameLength)
	}
	return nil
}
