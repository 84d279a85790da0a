package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 19, 8, 15, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"1", Date{2026, time.October, 1}},
		{"01", Date{2026, time.October, 1}},
		{"12/1", Date{2026, time.January, 12}},
		{"1/01", Date{2026, time.January, 1}},
		{"1/12", Date{2026, time.December, 1}},
		{"1/12/1920", Date{1920, time.December, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "a", "1//", "1/0t", "6/6/2020/20", "30/2", "0/1"} {
		_, err := ParseDate(input, testNow)
		assert.ErrorIs(t, err, ErrInvalidDate, input)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  Clock
	}{
		{"1", Clock{1, 0}},
		{"01", Clock{1, 0}},
		{"12:1", Clock{12, 1}},
		{"1:01", Clock{1, 1}},
		{"23:59", Clock{23, 59}},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, input := range []string{"", "a", "1:a", "1:1:1", "24", "1:60"} {
		_, err := ParseClock(input)
		assert.ErrorIs(t, err, ErrInvalidClock, input)
	}
}

func TestDate_Formats(t *testing.T) {
	d := Date{Year: 21, Month: time.January, Day: 1}
	assert.Equal(t, "0021-01-01", d.String())
	assert.Equal(t, "01/01/21", d.Display())
	assert.Equal(t, "", Date{}.Display())

	back, err := ParseISODate(Date{2001, time.July, 7}.String())
	require.NoError(t, err)
	assert.Equal(t, Date{2001, time.July, 7}, back)
}

func TestClockOf(t *testing.T) {
	assert.Equal(t, Clock{8, 15}, ClockOf(testNow))
	assert.Equal(t, "08:15", ClockOf(testNow).String())
	assert.Equal(t, Date{2026, time.October, 19}, Today(testNow))
}

func TestHourRange(t *testing.T) {
	r, err := HourRange(18)
	require.NoError(t, err)
	assert.Equal(t, ClockRange{Low: Clock{18, 0}, High: Clock{18, 59}}, r)

	_, err = HourRange(24)
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestLookupField(t *testing.T) {
	for _, name := range []string{"id", "name", "date", "time", "NAME"} {
		f, ok := LookupField(name)
		require.True(t, ok, name)
		assert.Equal(t, strings.ToLower(name), f.String())
	}
	_, ok := LookupField("zzzz")
	assert.False(t, ok)
}

func TestQuery_Columns(t *testing.T) {
	assert.Equal(t, AllFields, Query{}.Columns())
	assert.Equal(t, []Field{FieldTime}, Query{Returning: []Field{FieldTime}}.Columns())
}

func TestConjunction_And(t *testing.T) {
	base := Conjunction{Eq(FieldID, int64(1))}
	grown := base.And(Eq(FieldName, "x"))

	assert.Len(t, base, 1)
	assert.Len(t, grown, 2)
	assert.Equal(t, "id = 1 AND name = x", grown.String())
	assert.Equal(t, "true", Conjunction{}.String())
}
