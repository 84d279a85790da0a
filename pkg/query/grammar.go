package query

import (
	"regexp"

	"golang.org/x/text/cases"
)

// Kind is one expression kind of the grammar: a set of keyword
// synonyms followed by a value.
type Kind struct {
	name     string
	keywords []string
	value    *regexp.Regexp
	build    builder
}

// Name returns the kind's canonical name.
func (k Kind) Name() string { return k.name }

// Keywords returns the keyword synonyms that introduce the kind.
func (k Kind) Keywords() []string {
	return append([]string(nil), k.keywords...)
}

// valuePattern compiles a value pattern anchored at the start of the
// remaining input and followed by whitespace or end of input.
func valuePattern(p string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(` + p + `)(?:\s|$)`)
}

// grammar is walked in this order on every parse. Predicates therefore
// land in the conjunction as id, name, date, time whatever the input order.
var grammar = []Kind{
	{
		name:     "id",
		keywords: []string{"id"},
		value:    valuePattern(`-?\d+(?:\.\d+)?`),
		build:    buildID,
	},
	{
		name:     "name",
		keywords: []string{"name", "n"},
		value:    valuePattern("[\"'`].*?[\"'`]"),
		build:    buildName,
	},
	{
		name:     "date",
		keywords: []string{"date", "d"},
		value:    valuePattern(`today|\d{1,2}(?:/\d{1,2}(?:/\d{1,4})?)?`),
		build:    buildDate,
	},
	{
		name:     "time",
		keywords: []string{"time", "t"},
		value:    valuePattern(`\d{1,2}:\d{2}|\d{1,2}h`),
		build:    buildTime,
	},
	{
		name:     "sort",
		keywords: []string{"sort", "s"},
		value:    valuePattern(`-?\w+(?:,-?\w+)*`),
		build:    buildSort,
	},
	{
		name:     "limit",
		keywords: []string{"limit", "l"},
		value:    valuePattern(`-?\d+(?:\.\d+)?`),
		build:    buildLimit,
	},
	{
		name:     "returning",
		keywords: []string{"returning", "|"},
		value:    valuePattern(`\w+(?:,\w+)*`),
		build:    buildReturning,
	},
}

// keywordSet holds every synonym of every kind, case-folded.
var keywordSet = func() map[string]bool {
	fold := cases.Fold()
	set := make(map[string]bool)
	for _, k := range grammar {
		for _, kw := range k.keywords {
			set[fold.String(kw)] = true
		}
	}
	return set
}()

// Grammar returns the expression kinds in evaluation order.
func Grammar() []Kind {
	return append([]Kind(nil), grammar...)
}

// Keywords returns every keyword synonym the grammar recognizes.
func Keywords() []string {
	var out []string
	for _, k := range grammar {
		out = append(out, k.keywords...)
	}
	return out
}

// lookupKind returns the grammar entry with the given name.
func lookupKind(name string) (Kind, bool) {
	for _, k := range grammar {
		if k.name == name {
			return k, true
		}
	}
	return Kind{}, false
}
