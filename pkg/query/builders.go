package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// builder turns a matched value into contributions to the result.
type builder func(b *buildState, value string) error

// buildState is the result under construction for one parse call.
type buildState struct {
	res *Result
	now time.Time
}

func newBuildState(now time.Time) *buildState {
	res := NewResult()
	return &buildState{res: &res, now: now}
}

func (b *buildState) where(p core.Predicate) {
	b.res.Where = append(b.res.Where, p)
}

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	columnPattern = regexp.MustCompile(`^-?\w+$`)
)

func buildID(b *buildState, value string) error {
	if !digitsPattern.MatchString(value) {
		return syntaxError(ErrInvalidID, value, "id should be a positive integer")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return syntaxError(ErrInvalidID, value, "id should be a positive integer")
	}
	b.where(core.Eq(core.FieldID, id))
	b.res.ID = id
	return nil
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func buildName(b *buildState, value string) error {
	if len(value) < 2 || !isQuote(value[0]) || value[len(value)-1] != value[0] {
		return syntaxError(ErrInvalidName, value, "name should be quoted")
	}
	name := value[1 : len(value)-1]
	if name == "" {
		return syntaxError(ErrInvalidName, value, "name can't be empty")
	}
	b.where(core.Eq(core.FieldName, name))
	b.res.Name = name
	return nil
}

func buildDate(b *buildState, value string) error {
	var (
		d   core.Date
		err error
	)
	if strings.EqualFold(value, "today") {
		d = core.Today(b.now)
	} else if d, err = core.ParseDate(value, b.now); err != nil {
		return syntaxError(ErrInvalidValue, value, err.Error())
	}
	b.where(core.Eq(core.FieldDate, d))
	b.res.Date = &d
	return nil
}

func buildTime(b *buildState, value string) error {
	if hour, ok := strings.CutSuffix(strings.ToLower(value), "h"); ok {
		h, err := strconv.Atoi(hour)
		if err != nil {
			return syntaxError(ErrInvalidValue, value, err.Error())
		}
		r, err := core.HourRange(h)
		if err != nil {
			return syntaxError(ErrInvalidValue, value, err.Error())
		}
		b.where(core.Between(core.FieldTime, r))
		b.res.Time = &r.Low
		return nil
	}

	if !strings.Contains(value, ":") {
		return syntaxError(ErrInvalidValue, value, "expected H:MM or Hh")
	}
	c, err := core.ParseClock(value)
	if err != nil {
		return syntaxError(ErrInvalidValue, value, err.Error())
	}
	b.where(core.Eq(core.FieldTime, c))
	b.res.Time = &c
	return nil
}

// parseColumns splits a comma list of column names. Parts must not be
// empty or padded with spaces.
func parseColumns(value string, allowDesc bool) ([]core.SortKey, error) {
	parts := strings.Split(value, ",")
	keys := make([]core.SortKey, 0, len(parts))
	for _, part := range parts {
		if !columnPattern.MatchString(part) {
			return nil, syntaxError(ErrInvalidColumn, part, "")
		}
		dir := core.Asc
		name := part
		if allowDesc {
			if rest, ok := strings.CutPrefix(part, "-"); ok {
				dir, name = core.Desc, rest
			}
		}
		f, ok := core.LookupField(name)
		if !ok {
			return nil, syntaxError(ErrInvalidColumn, part, "")
		}
		keys = append(keys, core.SortKey{Field: f, Direction: dir})
	}
	return keys, nil
}

func buildSort(b *buildState, value string) error {
	keys, err := parseColumns(value, true)
	if err != nil {
		return err
	}
	b.res.Sort = append(b.res.Sort, keys...)
	return nil
}

func buildLimit(b *buildState, value string) error {
	if !digitsPattern.MatchString(value) {
		return syntaxError(ErrInvalidLimit, value, "limit should be a non-negative integer")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return syntaxError(ErrInvalidLimit, value, "limit is too large")
	}
	b.res.Limit = n
	return nil
}

func buildReturning(b *buildState, value string) error {
	if value == "" || strings.EqualFold(value, "all") {
		b.res.Returning = []core.Field{}
		return nil
	}
	keys, err := parseColumns(value, false)
	if err != nil {
		return err
	}
	fields := make([]core.Field, len(keys))
	for i, k := range keys {
		fields[i] = k.Field
	}
	b.res.Returning = fields
	return nil
}

// ParseSort parses a sort list such as "date,-time" outside of an
// expression.
func ParseSort(value string) ([]core.SortKey, error) {
	return parseColumns(value, true)
}

// ParseFields parses a column list such as "name,time". "all" selects
// every column and yields an empty slice.
func ParseFields(value string) ([]core.Field, error) {
	b := newBuildState(time.Time{})
	if err := buildReturning(b, value); err != nil {
		return nil, err
	}
	return b.res.Returning, nil
}
