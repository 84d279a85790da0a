package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/monhealth/internal/shell"
	"github.com/leapstack-labs/monhealth/pkg/query"
)

// lineReader is the part of readline the shell loop uses.
type lineReader interface {
	Readline() (string, error)
}

// NewShellCommand creates the interactive shell command.
func NewShellCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Start an interactive shell for recording and querying food entries.

Commands are separated by ';'. Ctrl-C discards the current line and
Ctrl-D exits.`,
		Example: `  monhealth shell
  >>> insert coffee, apple
  >>> find d today s -time | name,time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunShell(cmd, version)
		},
	}
}

// RunShell runs the interactive shell on the command's streams.
func RunShell(cmd *cobra.Command, version string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	session := cc.NewSession(cmd.OutOrStdout())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cc.Renderer.Styles().Prompt.Render(cc.Cfg.Prompt),
		HistoryFile:     cc.Cfg.History(),
		AutoComplete:    newCompleter(session.Commands()),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Logger.Debug("shell started", slog.String("session", session.ID()))
	return runLoop(cmd.Context(), rl, session, cmd.OutOrStdout(), version)
}

// runLoop reads lines until exit or end of input. Errors of individual
// commands are reported by the session and do not end the loop.
func runLoop(ctx context.Context, rl lineReader, session *shell.Session, out io.Writer, version string) error {
	_, _ = fmt.Fprintf(out, "monhealth %s. Type 'help' for help.\n", version)

	for !session.Done() {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			_ = session.Execute(ctx, "exit")
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		_ = session.Execute(ctx, line)
	}
	return nil
}

// newCompleter completes command names, then expression keywords.
func newCompleter(table *shell.Table) *readline.PrefixCompleter {
	var keywords []readline.PrefixCompleterInterface
	for _, kw := range query.Keywords() {
		keywords = append(keywords, readline.PcItem(kw))
	}

	var items []readline.PrefixCompleterInterface
	for _, c := range table.Commands() {
		switch c.Name {
		case "find", "update", "delete", "refine":
			items = append(items, readline.PcItem(c.Name, keywords...))
		case "help":
			var names []readline.PrefixCompleterInterface
			for _, n := range table.Names() {
				names = append(names, readline.PcItem(n))
			}
			items = append(items, readline.PcItem(c.Name, names...))
		default:
			items = append(items, readline.PcItem(c.Name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
