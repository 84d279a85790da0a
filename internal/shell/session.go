// Package shell executes monhealth command lines against a record store.
//
// A line holds one or more statements separated by ';'. Each statement is
// a command name followed by its arguments, for example
//
//	insert coffee, apple; find d today s -time
//
// A Session owns the accumulated query used by refine and reset and is
// meant to be driven by a single goroutine.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/monhealth/pkg/core"
	"github.com/leapstack-labs/monhealth/pkg/query"
)

// DefaultMaxNameLength is the longest name insert accepts.
const DefaultMaxNameLength = 20

// DefaultSort orders find results when the expression has no sort.
var DefaultSort = []core.SortKey{
	{Field: core.FieldDate, Direction: core.Asc},
	{Field: core.FieldTime, Direction: core.Asc},
}

// Renderer writes command results.
type Renderer interface {
	RenderFoods(w io.Writer, foods []core.Food, columns []core.Field) error
	RenderLines(w io.Writer, lines []string) error
	RenderStatus(w io.Writer, msg string) error
	RenderError(w io.Writer, err error) error
}

// Options configures a Session. Zero values select the defaults.
type Options struct {
	DefaultSort   []core.SortKey
	Columns       []core.Field
	MaxNameLength int
	Now           func() time.Time
	Logger        *slog.Logger
}

// Session runs commands and keeps the state shared between them.
type Session struct {
	id       string
	store    core.Store
	renderer Renderer
	out      io.Writer
	parser   *query.Parser
	logger   *slog.Logger
	now      func() time.Time

	defaultSort   []core.SortKey
	columns       []core.Field
	maxNameLength int

	commands *Table
	acc      query.Result
	done     bool
}

// New creates a session writing to out.
func New(store core.Store, renderer Renderer, out io.Writer, opts Options) *Session {
	s := &Session{
		id:            uuid.NewString(),
		store:         store,
		renderer:      renderer,
		out:           out,
		now:           opts.Now,
		logger:        opts.Logger,
		defaultSort:   opts.DefaultSort,
		columns:       opts.Columns,
		maxNameLength: opts.MaxNameLength,
		acc:           query.NewResult(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if len(s.defaultSort) == 0 {
		s.defaultSort = DefaultSort
	}
	if s.maxNameLength <= 0 {
		s.maxNameLength = DefaultMaxNameLength
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	s.parser = query.New(query.WithClock(s.now))
	s.commands = builtinCommands()
	return s
}

// ID returns the session id used to correlate log records.
func (s *Session) ID() string { return s.id }

// Commands returns the command table.
func (s *Session) Commands() *Table { return s.commands }

// Done reports whether exit has run.
func (s *Session) Done() bool { return s.done }

// Accumulated returns the query built by refine since the last reset.
func (s *Session) Accumulated() query.Result { return s.acc }

// Execute runs every statement of line in order. A failing statement is
// reported through the renderer and does not stop the following ones.
// The returned error joins all failures. Statements after exit are
// skipped.
func (s *Session) Execute(ctx context.Context, line string) error {
	var errs []error
	for _, stmt := range SplitStatements(line) {
		if s.done {
			break
		}
		if err := s.Run(ctx, stmt); err != nil {
			errs = append(errs, err)
			if rerr := s.renderer.RenderError(s.out, err); rerr != nil {
				return errors.Join(append(errs, rerr)...)
			}
		}
	}
	return errors.Join(errs...)
}

// Run executes a single statement.
func (s *Session) Run(ctx context.Context, stmt string) error {
	name, args, err := SplitCommand(stmt)
	if err != nil {
		return err
	}
	cmd, err := s.commands.Lookup(name)
	if err != nil {
		return err
	}

	s.logger.Debug("running command", slog.String("command", cmd.Name), slog.String("args", args))
	if err := cmd.Run(ctx, s, args); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}
