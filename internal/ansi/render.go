// Package ansi converts terminal output containing ANSI/VT100 escape
// sequences into sanitized HTML for the desktop log webview.
//
// Rendering is pure and synchronous: each Render call owns its own SGR state
// and output buffer, so concurrent calls never share anything. Malformed
// input degrades gracefully; the worst case is the text rendered flat with
// the offending control codes removed.
package ansi

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Render converts raw log text into HTML. Literal text is escaped, SGR
// sequences become minimal <span style="..."> wrapping (a span opens or
// closes only where the computed style actually changes), and all other
// control sequences vanish. Empty input returns "".
func Render(text string) string {
	if text == "" {
		return ""
	}
	text = StripControl(text)

	var (
		out     strings.Builder
		state   State
		current string
		open    bool
	)
	out.Grow(len(text) + len(text)/4)

	// Spans open only around literal text, so back-to-back SGR sequences
	// never produce an empty span.
	emit := func(chunk string) {
		if chunk == "" {
			return
		}
		style := state.styleString()
		if style != current {
			if open {
				out.WriteString("</span>")
				open = false
			}
			if style != "" {
				out.WriteString(`<span style="`)
				out.WriteString(style)
				out.WriteString(`">`)
				open = true
			}
			current = style
		}
		out.WriteString(htmlEscaper.Replace(chunk))
	}

	sc := sgrScanner{input: text}
	last := 0
	for {
		m, ok := sc.next()
		if !ok {
			break
		}
		emit(text[last:m.start])
		last = m.end
		state.Apply(m.codes)
	}
	emit(text[last:])
	if open {
		out.WriteString("</span>")
	}
	return out.String()
}

// EscapeHTML escapes & < > " ' the same way Render does for literal text.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
