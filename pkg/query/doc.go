// Package query parses the free-text expressions used to select food entries.
//
// An expression is a sequence of keyword/value pairs in any order:
//
//	id 66
//	n "coffee" date 1/01 t 5h sort date,-name l 1 | name,time
//
// Keywords and their synonyms are id; name, n; date, d; time, t; sort, s;
// limit, l; returning, |. Keywords match case-insensitively. Each kind may
// appear at most once per expression.
//
// Parse returns a Result holding a core.Query (where, sort, limit,
// returning) and the raw id, name, date and time values. Refine and Merge
// combine successive expressions into one query.
package query
