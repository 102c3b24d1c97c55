package sqlhl

import "strings"

// joinKeywords prefix a JOIN and should not get their own line break when the
// previous token already started the phrase.
var joinKeywords = map[string]bool{
	"left": true, "right": true, "inner": true, "full": true,
	"cross": true, "outer": true,
}

// Format normalizes sql: keywords uppercased, one space between tokens, and a
// line break before each major clause. Comments and string literals are kept
// verbatim. The result has no trailing whitespace.
func Format(sql string) string {
	tokens := Tokenize(sql)

	var b strings.Builder
	var prev Token
	wrote := false
	for _, tok := range tokens {
		if tok.Kind == KindWhitespace {
			continue
		}
		text := tok.Text
		if tok.Kind == KindKeyword {
			text = strings.ToUpper(text)
		}
		if wrote {
			b.WriteString(separator(prev, tok))
		}
		b.WriteString(text)
		prev = tok
		wrote = true
	}
	return b.String()
}

// separator decides what goes between the previous token and the next one.
func separator(prev, next Token) string {
	if next.Kind == KindKeyword && clauseStarters[strings.ToLower(next.Text)] {
		lower := strings.ToLower(next.Text)
		prevLower := strings.ToLower(prev.Text)
		// LEFT OUTER JOIN stays on one line: only the first word of a join
		// phrase breaks.
		if lower == "join" && prev.Kind == KindKeyword && joinKeywords[prevLower] {
			return " "
		}
		// (SELECT … subqueries stay glued to their paren.
		if prev.Kind == KindPunct && prev.Text == "(" {
			return ""
		}
		return "\n"
	}
	if next.Kind == KindPunct {
		switch next.Text {
		case ",", ")", ";":
			return ""
		}
	}
	// Qualified names (a.id) keep the dot tight on both sides.
	if next.Kind == KindOperator && next.Text == "." || prev.Kind == KindOperator && prev.Text == "." {
		return ""
	}
	if prev.Kind == KindPunct && prev.Text == "(" {
		return ""
	}
	// count(*) style calls: no space between a function name and its paren.
	// CAST(… gets the same treatment.
	if next.Kind == KindPunct && next.Text == "(" &&
		(prev.Kind == KindIdent || prev.Kind == KindKeyword && strings.EqualFold(prev.Text, "cast")) {
		return ""
	}
	return " "
}
