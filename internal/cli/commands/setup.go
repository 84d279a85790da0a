package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/monhealth/internal/cli/config"
	"github.com/leapstack-labs/monhealth/internal/cli/output"
	"github.com/leapstack-labs/monhealth/internal/shell"
	"github.com/leapstack-labs/monhealth/internal/state"
)

var _ shell.Renderer = (*output.Renderer)(nil)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLStore
	Renderer *output.Renderer
}

// NewCommandContext opens and migrates the configured store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)

	store, err := openStore(cmd, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Renderer: newRenderer(cmd, cfg),
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: newRenderer(cmd, cfg),
	}
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	// Validated when the config was loaded.
	mode, _ := output.ParseMode(cfg.OutputFormat)
	return output.NewRenderer(cmd.OutOrStdout(), mode)
}

func openStore(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*state.SQLStore, error) {
	if cfg.Driver == state.DriverSQLite && cfg.Database != ":memory:" {
		if dir := filepath.Dir(cfg.Database); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	store := state.NewSQLStore(logger)
	if err := store.Open(cmd.Context(), cfg.Driver, cfg.DataSource()); err != nil {
		return nil, err
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// NewSession creates a shell session writing to out.
func (cc *CommandContext) NewSession(out io.Writer) *shell.Session {
	return shell.New(cc.Store, cc.Renderer, out, shell.Options{
		DefaultSort:   cc.Cfg.Find.DefaultSort,
		Columns:       cc.Cfg.Find.Columns,
		MaxNameLength: cc.Cfg.Insert.MaxNameLength,
		Logger:        cc.Logger,
	})
}
