package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

func runBuilder(t *testing.T, build builder, value string) (*Result, error) {
	t.Helper()
	b := newBuildState(fixedNow)
	err := build(b, value)
	return b.res, err
}

func TestBuildID(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  int64
	}{
		{"4", 4},
		{"44", 44},
	} {
		res, err := runBuilder(t, buildID, tt.value)
		require.NoError(t, err)
		assert.Equal(t, core.Conjunction{core.Eq(core.FieldID, tt.want)}, res.Where)
		assert.Equal(t, tt.want, res.ID)
	}

	for _, value := range []string{"", "a", "-4", "0.5", "0", "99999999999999999999"} {
		_, err := runBuilder(t, buildID, value)
		assert.ErrorIs(t, err, ErrInvalidID, value)
	}
}

func TestBuildName(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  string
	}{
		{`"hotdog"`, "hotdog"},
		{"`hotdog`", "hotdog"},
		{"'hotdog'", "hotdog"},
		{"'  hotdog  '", "  hotdog  "},
	} {
		res, err := runBuilder(t, buildName, tt.value)
		require.NoError(t, err)
		assert.Equal(t, core.Conjunction{core.Eq(core.FieldName, tt.want)}, res.Where)
		assert.Equal(t, tt.want, res.Name)
	}

	for _, value := range []string{"''", "hotdog", "`hotdog", "'hotdog\"", "'"} {
		_, err := runBuilder(t, buildName, value)
		assert.ErrorIs(t, err, ErrInvalidName, value)
	}
}

func TestBuildDate(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  core.Date
	}{
		{"today", date(19, time.October, 2026)},
		{"toDAY", date(19, time.October, 2026)},
		{"1", date(1, time.October, 2026)},
		{"18", date(18, time.October, 2026)},
		{"18/5", date(18, time.May, 2026)},
		{"1/5/2000", date(1, time.May, 2000)},
		{"01/6/55", date(1, time.June, 55)},
	} {
		res, err := runBuilder(t, buildDate, tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, core.Conjunction{core.Eq(core.FieldDate, tt.want)}, res.Where)
		require.NotNil(t, res.Date)
		assert.Equal(t, tt.want, *res.Date)
	}

	for _, value := range []string{"0", "32", "29/2/2026", "1/13", "1/1/0"} {
		_, err := runBuilder(t, buildDate, value)
		assert.ErrorIs(t, err, ErrInvalidValue, value)
	}
}

func TestBuildTime(t *testing.T) {
	res, err := runBuilder(t, buildTime, "18h")
	require.NoError(t, err)
	assert.Equal(t, core.Conjunction{core.Between(core.FieldTime, hourRange(18))}, res.Where)
	assert.Equal(t, clock(18, 0), *res.Time)

	res, err = runBuilder(t, buildTime, "18:55")
	require.NoError(t, err)
	assert.Equal(t, core.Conjunction{core.Eq(core.FieldTime, clock(18, 55))}, res.Where)
	assert.Equal(t, clock(18, 55), *res.Time)

	for _, value := range []string{"18", "24h", "12:60", "xh"} {
		_, err := runBuilder(t, buildTime, value)
		assert.ErrorIs(t, err, ErrInvalidValue, value)
	}
}

func TestBuildSort(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  []core.SortKey
	}{
		{"date", []core.SortKey{{Field: core.FieldDate, Direction: core.Asc}}},
		{"-date", []core.SortKey{{Field: core.FieldDate, Direction: core.Desc}}},
		{"-date,-name,time", []core.SortKey{
			{Field: core.FieldDate, Direction: core.Desc},
			{Field: core.FieldName, Direction: core.Desc},
			{Field: core.FieldTime, Direction: core.Asc},
		}},
		{"date,-name", []core.SortKey{
			{Field: core.FieldDate, Direction: core.Asc},
			{Field: core.FieldName, Direction: core.Desc},
		}},
		{"id,id", []core.SortKey{
			{Field: core.FieldID, Direction: core.Asc},
			{Field: core.FieldID, Direction: core.Asc},
		}},
	} {
		res, err := runBuilder(t, buildSort, tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, res.Sort)
	}

	for _, value := range []string{"", "time,", "   time", "time  ", "zzzz", "--date"} {
		_, err := runBuilder(t, buildSort, value)
		assert.ErrorIs(t, err, ErrInvalidColumn, value)
	}
}

func TestBuildLimit(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  int
	}{
		{"5", 5},
		{"0", 0},
	} {
		res, err := runBuilder(t, buildLimit, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Limit)
	}

	for _, value := range []string{"a", "", "-4", "5.0"} {
		_, err := runBuilder(t, buildLimit, value)
		assert.ErrorIs(t, err, ErrInvalidLimit, value)
	}
}

func TestBuildReturning(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  []core.Field
	}{
		{"", []core.Field{}},
		{"all", []core.Field{}},
		{"ALL", []core.Field{}},
		{"name", []core.Field{core.FieldName}},
		{"name,time", []core.Field{core.FieldName, core.FieldTime}},
	} {
		res, err := runBuilder(t, buildReturning, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Returning)
	}

	for _, value := range []string{"time,", "   time", "time  ", "zzzz", "-name"} {
		_, err := runBuilder(t, buildReturning, value)
		assert.ErrorIs(t, err, ErrInvalidColumn, value)
	}
}

func TestGrammar_Order(t *testing.T) {
	var names []string
	for _, k := range Grammar() {
		names = append(names, k.Name())
	}
	assert.Equal(t, []string{"id", "name", "date", "time", "sort", "limit", "returning"}, names)
	assert.Contains(t, Keywords(), "|")
}

func TestParseSortAndFields(t *testing.T) {
	keys, err := ParseSort("date,-time")
	require.NoError(t, err)
	assert.Equal(t, []core.SortKey{
		{Field: core.FieldDate, Direction: core.Asc},
		{Field: core.FieldTime, Direction: core.Desc},
	}, keys)

	_, err = ParseSort("date,")
	assert.ErrorIs(t, err, ErrInvalidColumn)

	fields, err := ParseFields("name,date")
	require.NoError(t, err)
	assert.Equal(t, []core.Field{core.FieldName, core.FieldDate}, fields)

	fields, err = ParseFields("all")
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseFields("-name")
	assert.ErrorIs(t, err, ErrInvalidColumn)
}
