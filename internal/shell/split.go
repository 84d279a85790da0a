package shell

import (
	"strings"
	"unicode"
)

// SplitStatements splits a line on ';' and drops blank statements.
// Surrounding whitespace is trimmed from each statement.
func SplitStatements(line string) []string {
	var out []string
	for _, stmt := range strings.Split(line, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// SplitCommand separates a statement into the command name and its
// trimmed arguments. A blank statement yields ErrCommandNotFound.
func SplitCommand(stmt string) (name, args string, err error) {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return "", "", ErrCommandNotFound
	}
	i := strings.IndexFunc(stmt, unicode.IsSpace)
	if i < 0 {
		return stmt, "", nil
	}
	return stmt[:i], strings.TrimSpace(stmt[i:]), nil
}
