package query

import (
	"time"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// Result is the outcome of parsing one expression string.
//
// Besides the query descriptor it keeps the raw values of the id, name,
// date and time expressions for commands that need them directly, such
// as update.
type Result struct {
	core.Query

	ID   int64       // 0 when no id expression was given
	Name string      // "" when no name expression was given
	Date *core.Date  // nil when no date expression was given
	Time *core.Clock // point, or low bound of an hour range
}

// NewResult returns the result of parsing an empty string: match
// everything, no ordering, no limit, all columns.
func NewResult() Result {
	return Result{
		Query: core.Query{
			Where:     core.Conjunction{},
			Sort:      []core.SortKey{},
			Limit:     core.Unbounded,
			Returning: []core.Field{},
		},
	}
}

// Parser parses query expressions. A Parser holds no per-call state and
// may be shared between goroutines.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the source of the current time, used to resolve
// "today" and partial dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse parses input with a parser on the system clock.
func Parse(input string) (Result, error) {
	return defaultParser.Parse(input)
}

// Parse walks the grammar once, in order. Each kind whose keyword is
// present has its value matched and built; anything left over is an
// ErrInvalidExpression. On error the zero-state result is returned.
func (p *Parser) Parse(input string) (Result, error) {
	s := newScanner(input)
	b := newBuildState(p.now())

	for _, k := range grammar {
		kw, ok := s.searchKeyword(k)
		if !ok {
			continue
		}
		value, last, err := s.matchValue(k, kw)
		if err != nil {
			return NewResult(), err
		}
		s.consume(kw, last)
		if err := k.build(b, value); err != nil {
			return NewResult(), err
		}
	}

	if rest := s.residue(); rest != "" {
		return NewResult(), syntaxError(ErrInvalidExpression, rest, "")
	}
	return *b.res, nil
}

// Refine parses input and merges it into prev. On error prev is returned
// unchanged.
func (p *Parser) Refine(prev Result, input string) (Result, error) {
	next, err := p.Parse(input)
	if err != nil {
		return prev, err
	}
	return Merge(prev, next), nil
}

// Merge combines two results for progressive refinement. Predicates of
// next are ANDed after those of prev. Sort, limit and returning are taken
// from next as they are. Scalar values are taken from next when next
// supplied them and kept from prev otherwise, so a scalar may name the
// latest value while the where clause still holds earlier ones.
func Merge(prev, next Result) Result {
	out := next
	out.Where = prev.Where.And(next.Where...)

	if next.ID == 0 {
		out.ID = prev.ID
	}
	if next.Name == "" {
		out.Name = prev.Name
	}
	if next.Date == nil {
		out.Date = prev.Date
	}
	if next.Time == nil {
		out.Time = prev.Time
	}
	return out
}
