// Package sqlhl tokenizes SQL text for the query console: keyword-aware
// formatting and HTML highlighting. It never parses or executes anything;
// queries run on the backend.
package sqlhl

import "strings"

// Kind classifies a token.
type Kind int

const (
	KindWhitespace Kind = iota
	KindKeyword
	KindIdent
	KindString
	KindNumber
	KindComment
	KindOperator
	KindPunct
)

// Token is one lexeme with its original text preserved.
type Token struct {
	Kind Kind
	Text string
}

// keywords covers the statements and clauses the query console sees against
// the SQLite-backed catalog.
var keywords = map[string]bool{
	"select": true, "from": true, "where": true, "and": true, "or": true,
	"not": true, "in": true, "is": true, "null": true, "like": true,
	"between": true, "exists": true, "case": true, "when": true, "then": true,
	"else": true, "end": true, "as": true, "distinct": true, "all": true,
	"group": true, "by": true, "having": true, "order": true, "asc": true,
	"desc": true, "limit": true, "offset": true, "union": true, "except": true,
	"intersect": true, "join": true, "inner": true, "left": true, "right": true,
	"full": true, "outer": true, "cross": true, "on": true, "using": true,
	"insert": true, "into": true, "values": true, "update": true, "set": true,
	"delete": true, "create": true, "table": true, "index": true, "view": true,
	"drop": true, "alter": true, "add": true, "column": true, "primary": true,
	"key": true, "foreign": true, "references": true, "unique": true,
	"default": true, "check": true, "constraint": true, "if": true,
	"cast": true, "pragma": true, "explain": true,
	"with": true, "recursive": true, "returning": true,
}

// clauseStarters begin a new line when formatting.
var clauseStarters = map[string]bool{
	"select": true, "from": true, "where": true, "group": true,
	"having": true, "order": true, "limit": true, "offset": true,
	"union": true, "except": true, "intersect": true, "join": true,
	"left": true, "right": true, "inner": true, "full": true, "cross": true,
	"insert": true, "update": true, "delete": true, "values": true,
	"set": true, "returning": true,
}

// Tokenize splits sql into tokens, whitespace included, so the concatenation
// of all token texts reproduces the input. Unterminated strings and comments
// extend to the end of input rather than failing.
func Tokenize(sql string) []Token {
	var tokens []Token
	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case isSpace(c):
			j := i
			for j < len(sql) && isSpace(sql[j]) {
				j++
			}
			tokens = append(tokens, Token{KindWhitespace, sql[i:j]})
			i = j
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			j := strings.IndexByte(sql[i:], '\n')
			if j < 0 {
				j = len(sql) - i
			}
			tokens = append(tokens, Token{KindComment, sql[i : i+j]})
			i += j
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			j := strings.Index(sql[i+2:], "*/")
			end := len(sql)
			if j >= 0 {
				end = i + 2 + j + 2
			}
			tokens = append(tokens, Token{KindComment, sql[i:end]})
			i = end
		case c == '\'':
			tokens = append(tokens, Token{KindString, scanString(sql, i)})
			i += len(tokens[len(tokens)-1].Text)
		case c == '"':
			tokens = append(tokens, Token{KindIdent, scanQuoted(sql, i)})
			i += len(tokens[len(tokens)-1].Text)
		case c >= '0' && c <= '9':
			j := i
			for j < len(sql) && (sql[j] >= '0' && sql[j] <= '9' || sql[j] == '.' ||
				sql[j] == 'e' || sql[j] == 'E' ||
				(sql[j] == '+' || sql[j] == '-') && j > i && (sql[j-1] == 'e' || sql[j-1] == 'E')) {
				j++
			}
			tokens = append(tokens, Token{KindNumber, sql[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(sql) && isIdentPart(sql[j]) {
				j++
			}
			word := sql[i:j]
			kind := KindIdent
			if keywords[strings.ToLower(word)] {
				kind = KindKeyword
			}
			tokens = append(tokens, Token{kind, word})
			i = j
		case c == ',' || c == '(' || c == ')' || c == ';':
			tokens = append(tokens, Token{KindPunct, sql[i : i+1]})
			i++
		default:
			j := i
			for j < len(sql) && isOperator(sql[j]) {
				j++
			}
			if j == i {
				j = i + 1 // pass unrecognized bytes through one at a time
			}
			tokens = append(tokens, Token{KindOperator, sql[i:j]})
			i = j
		}
	}
	return tokens
}

// scanString scans a single-quoted SQL string starting at i, honoring ''
// escapes. Unterminated strings run to the end of input.
func scanString(sql string, i int) string {
	j := i + 1
	for j < len(sql) {
		if sql[j] == '\'' {
			if j+1 < len(sql) && sql[j+1] == '\'' {
				j += 2
				continue
			}
			return sql[i : j+1]
		}
		j++
	}
	return sql[i:]
}

// scanQuoted scans a double-quoted identifier starting at i.
func scanQuoted(sql string, i int) string {
	j := strings.IndexByte(sql[i+1:], '"')
	if j < 0 {
		return sql[i:]
	}
	return sql[i : i+1+j+1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '$'
}

func isOperator(c byte) bool {
	switch c {
	case '=', '<', '>', '!', '+', '-', '*', '/', '%', '|', '&', '~', '.', '?', ':':
		return true
	}
	return false
}
