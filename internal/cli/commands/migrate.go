package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Create or upgrade the food table in the configured database and print
the resulting schema version. Other commands migrate automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			version, err := cc.Store.MigrationVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			cc.Renderer.Success(fmt.Sprintf("%s schema at version %d", cc.Store.Driver(), version))
			return nil
		},
	}
}
