package sqlhl

import (
	"strings"

	"github.com/biovault/bvconsole/internal/ansi"
)

// Token colors follow the same dark theme as the terminal renderer.
var kindColors = map[Kind]string{
	KindKeyword: "#569cd6",
	KindString:  "#ce9178",
	KindNumber:  "#b5cea8",
	KindComment: "#6a9955",
}

// Highlight renders sql as HTML, wrapping keywords, strings, numbers, and
// comments in styled spans. Whitespace and identifiers pass through escaped,
// so the text content of the output equals the input.
func Highlight(sql string) string {
	var b strings.Builder
	for _, tok := range Tokenize(sql) {
		color, ok := kindColors[tok.Kind]
		if !ok {
			b.WriteString(ansi.EscapeHTML(tok.Text))
			continue
		}
		b.WriteString(`<span style="color: `)
		b.WriteString(color)
		b.WriteString(`">`)
		b.WriteString(ansi.EscapeHTML(tok.Text))
		b.WriteString(`</span>`)
	}
	return b.String()
}
