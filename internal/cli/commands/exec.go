package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// errStatementsFailed is returned by exec after the failures were reported.
var errStatementsFailed = errors.New("one or more statements failed")

// NewExecCommand creates the one-shot command runner.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run shell commands without entering the shell",
		Long: `Run one or more shell commands separated by ';' and exit.

Every statement runs even when an earlier one fails. The exit status is
non-zero when any statement failed.`,
		Example: `  monhealth exec "insert coffee"
  monhealth exec "find d today; find t 18h | name" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			session := cc.NewSession(cmd.OutOrStdout())
			if err := session.Execute(cmd.Context(), strings.Join(args, " ")); err != nil {
				return errStatementsFailed
			}
			return nil
		},
	}
}
