package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// token is a maximal run of non-space bytes in the input.
type token struct {
	text       string
	start, end int
	used       bool
}

// scanner tracks which tokens of an input have been consumed by an
// expression. Consumed tokens are flagged in place; the input string is
// never rebuilt.
type scanner struct {
	input string
	toks  []token
	fold  cases.Caser
}

// isSpace matches the same set as \s in the value patterns.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func newScanner(input string) *scanner {
	s := &scanner{input: input, fold: cases.Fold()}
	for i := 0; i < len(input); {
		if isSpace(input[i]) {
			i++
			continue
		}
		start := i
		for i < len(input) && !isSpace(input[i]) {
			i++
		}
		s.toks = append(s.toks, token{text: input[start:i], start: start, end: i})
	}
	return s
}

func (s *scanner) isKeyword(i int) bool {
	return keywordSet[s.fold.String(s.toks[i].text)]
}

func (s *scanner) isKeywordOf(k Kind, i int) bool {
	folded := s.fold.String(s.toks[i].text)
	for _, kw := range k.keywords {
		if folded == kw {
			return true
		}
	}
	return false
}

// searchKeyword returns the index of the first live token that is one of
// k's keywords and is not itself preceded by a keyword. A keyword right
// after another keyword is the pending expression's value, not a new
// expression ("date date" names the value "date").
func (s *scanner) searchKeyword(k Kind) (int, bool) {
	prev := -1
	for i := range s.toks {
		if s.toks[i].used {
			continue
		}
		if s.isKeywordOf(k, i) && (prev < 0 || !s.isKeyword(prev)) {
			return i, true
		}
		prev = i
	}
	return -1, false
}

// renderedToken records where a token ends in rendered text.
type renderedToken struct {
	index int
	end   int
}

// render returns the live text from token from onward. Whitespace between
// two live tokens is kept as written unless a consumed token sat between
// them, in which case it collapses to one space.
func (s *scanner) render(from int) (string, []renderedToken) {
	var b strings.Builder
	var out []renderedToken
	last, gap := -1, false
	for i := from; i < len(s.toks); i++ {
		t := s.toks[i]
		if t.used {
			gap = true
			continue
		}
		if last >= 0 {
			if gap {
				b.WriteByte(' ')
			} else {
				b.WriteString(s.input[s.toks[last].end:t.start])
			}
		}
		b.WriteString(t.text)
		out = append(out, renderedToken{index: i, end: b.Len()})
		last, gap = i, false
	}
	return b.String(), out
}

// matchValue matches k's value pattern against the live text following
// the keyword at kw. It returns the value text and the index of the last
// token the value covers.
func (s *scanner) matchValue(k Kind, kw int) (string, int, error) {
	text, rendered := s.render(kw + 1)
	m := k.value.FindStringSubmatchIndex(text)
	if m != nil {
		for _, r := range rendered {
			if r.end == m[3] {
				return text[m[2]:m[3]], r.index, nil
			}
		}
	}

	// Quote the first word of what follows the keyword.
	next := ""
	if len(rendered) > 0 {
		next = s.toks[rendered[0].index].text
	}
	return "", -1, syntaxError(ErrInvalidValue, next, "")
}

// consume flags tokens from through to as used.
func (s *scanner) consume(from, to int) {
	for i := from; i <= to; i++ {
		s.toks[i].used = true
	}
}

// residue returns the live text that no expression claimed.
func (s *scanner) residue() string {
	text, _ := s.render(0)
	return text
}
