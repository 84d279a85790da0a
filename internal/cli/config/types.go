// Package config provides configuration management for the monhealth CLI.
package config

import (
	"path/filepath"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// Default configuration values.
const (
	DefaultDatabase      = "health.db"
	DefaultDriver        = "sqlite"
	DefaultOutput        = "auto"
	DefaultPrompt        = ">>> "
	DefaultSort          = "date,time"
	DefaultColumns       = "id,name,time,date"
	DefaultMaxNameLength = 20
	historyFileName      = ".monhealth_history"
)

// Config holds all CLI configuration options.
type Config struct {
	Database     string       `koanf:"database"`
	Driver       string       `koanf:"driver"`
	DSN          string       `koanf:"dsn"`
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	HistoryFile  string       `koanf:"history_file"`
	Prompt       string       `koanf:"prompt"`
	Find         FindConfig   `koanf:"find"`
	Insert       InsertConfig `koanf:"insert"`
}

// FindConfig holds defaults applied by the find and refine commands.
type FindConfig struct {
	DefaultSort []core.SortKey `koanf:"default_sort"`
	Columns     []core.Field   `koanf:"columns"`
}

// InsertConfig holds limits applied by the insert command.
type InsertConfig struct {
	MaxNameLength int `koanf:"max_name_length"`
}

// DataSource returns what the selected driver connects to: the database
// path for SQLite, the DSN otherwise.
func (c *Config) DataSource() string {
	if c.Driver == DefaultDriver || c.Driver == "" {
		return c.Database
	}
	return expandEnvVars(c.DSN)
}

// History returns the readline history file. Unless configured, it lives
// next to the SQLite database, or in the working directory.
func (c *Config) History() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	if (c.Driver == DefaultDriver || c.Driver == "") && c.Database != ":memory:" {
		return filepath.Join(filepath.Dir(c.Database), historyFileName)
	}
	return historyFileName
}

// Default returns a config holding the default values.
func Default() *Config {
	return &Config{
		Database:     DefaultDatabase,
		Driver:       DefaultDriver,
		OutputFormat: DefaultOutput,
		Prompt:       DefaultPrompt,
		Insert:       InsertConfig{MaxNameLength: DefaultMaxNameLength},
	}
}
