package shell

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/monhealth/pkg/core"
	"github.com/leapstack-labs/monhealth/pkg/query"
)

// helpPadding is the column width of command names in help output.
const helpPadding = 20

// Command is a named shell command.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Run         func(ctx context.Context, s *Session, args string) error
}

// Table resolves command names and aliases.
type Table struct {
	commands []*Command
	index    map[string]*Command
}

// NewTable builds a table. Later commands win on name clashes.
func NewTable(commands ...*Command) *Table {
	t := &Table{index: make(map[string]*Command)}
	for _, c := range commands {
		t.commands = append(t.commands, c)
		t.index[strings.ToLower(c.Name)] = c
		for _, a := range c.Aliases {
			t.index[strings.ToLower(a)] = c
		}
	}
	return t
}

// Lookup finds a command by name or alias, ignoring case.
func (t *Table) Lookup(name string) (*Command, error) {
	if c, ok := t.index[strings.ToLower(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrCommandNotFound, name)
}

// Commands returns the commands in registration order.
func (t *Table) Commands() []*Command {
	return slices.Clone(t.commands)
}

// Names returns every name and alias, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.index))
	for name := range t.index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func helpLine(c *Command) string {
	return fmt.Sprintf("%-*s%s", helpPadding, c.Name, c.Description)
}

func builtinCommands() *Table {
	return NewTable(
		&Command{
			Name:        "help",
			Aliases:     []string{"?"},
			Usage:       "help [command]",
			Description: "Prints this help.",
			Run:         runHelp,
		},
		&Command{
			Name:        "insert",
			Aliases:     []string{"add"},
			Usage:       "insert <name>[, <name>...]",
			Description: "Inserts entries into database.",
			Run:         runInsert,
		},
		&Command{
			Name:        "find",
			Aliases:     []string{"f"},
			Usage:       "find [expression]",
			Description: "Finds entries in database.",
			Run:         runFind,
		},
		&Command{
			Name:        "update",
			Usage:       "update id <n> name '<name>' [date <d>] [time <t>]",
			Description: "Updates entry in database.",
			Run:         runUpdate,
		},
		&Command{
			Name:        "delete",
			Aliases:     []string{"rm"},
			Usage:       "delete <expression>",
			Description: "Deletes entries from database.",
			Run:         runDelete,
		},
		&Command{
			Name:        "refine",
			Usage:       "refine <expression>",
			Description: "Narrows the current query and finds.",
			Run:         runRefine,
		},
		&Command{
			Name:        "reset",
			Usage:       "reset",
			Description: "Clears the current query.",
			Run:         runReset,
		},
		&Command{
			Name:        "exit",
			Aliases:     []string{"quit"},
			Usage:       "exit",
			Description: "Exits shell.",
			Run:         runExit,
		},
	)
}

func runHelp(_ context.Context, s *Session, args string) error {
	if args == "" {
		var lines []string
		for _, c := range s.commands.Commands() {
			lines = append(lines, helpLine(c))
		}
		return s.renderer.RenderLines(s.out, lines)
	}

	c, err := s.commands.Lookup(args)
	if err != nil {
		return err
	}
	lines := []string{helpLine(c), "usage: " + c.Usage}
	if len(c.Aliases) > 0 {
		lines = append(lines, "aliases: "+strings.Join(c.Aliases, ", "))
	}
	return s.renderer.RenderLines(s.out, lines)
}

// parseNames splits a comma-separated name list and sorts it.
func parseNames(args string, maxLen int) ([]string, error) {
	parts := strings.Split(args, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, ErrEmptyName
		}
		if utf8.RuneCountInString(name) > maxLen {
			return nil, fmt.Errorf("%w: %q has more than %d characters", ErrNameTooLong, name, maxLen)
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func runInsert(ctx context.Context, s *Session, args string) error {
	names, err := parseNames(args, s.maxNameLength)
	if err != nil {
		return err
	}

	now := s.now()
	foods := make([]core.Food, len(names))
	for i, name := range names {
		foods[i] = core.Food{Name: name, Date: core.Today(now), Time: core.ClockOf(now)}
	}

	ids, err := s.store.Insert(ctx, foods...)
	if err != nil {
		return err
	}
	return s.renderer.RenderStatus(s.out, fmt.Sprintf("inserted %s", plural(len(ids), "entry", "entries")))
}

func runFind(ctx context.Context, s *Session, args string) error {
	res, err := s.parser.Parse(args)
	if err != nil {
		return err
	}
	return s.find(ctx, res.Query)
}

// find applies the session defaults to q and renders the matches.
func (s *Session) find(ctx context.Context, q core.Query) error {
	if len(q.Sort) == 0 {
		q.Sort = s.defaultSort
	}
	if len(q.Returning) == 0 && len(s.columns) > 0 {
		q.Returning = s.columns
	}

	foods, err := s.store.Find(ctx, q)
	if err != nil {
		return err
	}
	return s.renderer.RenderFoods(s.out, foods, q.Columns())
}

func runUpdate(ctx context.Context, s *Session, args string) error {
	res, err := s.parser.Parse(args)
	if err != nil {
		return err
	}
	if res.ID == 0 {
		return ErrIDRequired
	}
	if res.Name == "" {
		return ErrNameRequired
	}

	now := s.now()
	f := core.Food{ID: res.ID, Name: res.Name, Date: core.Today(now), Time: core.ClockOf(now)}
	if res.Date != nil {
		f.Date = *res.Date
	}
	if res.Time != nil {
		f.Time = *res.Time
	}

	if err := s.store.Replace(ctx, f); err != nil {
		return err
	}
	return s.renderer.RenderStatus(s.out, fmt.Sprintf("updated entry %d", f.ID))
}

func runDelete(ctx context.Context, s *Session, args string) error {
	res, err := s.parser.Parse(args)
	if err != nil {
		return err
	}
	if res.Where.MatchesAll() {
		return ErrEmptyFilter
	}

	n, err := s.store.Delete(ctx, res.Where)
	if err != nil {
		return err
	}
	return s.renderer.RenderStatus(s.out, fmt.Sprintf("deleted %s", plural(int(n), "entry", "entries")))
}

func runRefine(ctx context.Context, s *Session, args string) error {
	acc, err := s.parser.Refine(s.acc, args)
	if err != nil {
		return err
	}
	s.acc = acc
	return s.find(ctx, acc.Query)
}

func runReset(_ context.Context, s *Session, _ string) error {
	s.acc = query.NewResult()
	return s.renderer.RenderStatus(s.out, "query reset")
}

func runExit(_ context.Context, s *Session, _ string) error {
	s.done = true
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
