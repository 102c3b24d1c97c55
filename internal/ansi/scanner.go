package ansi

import (
	"strconv"
	"strings"
)

// sgrMatch is one SGR escape sequence located in the input.
type sgrMatch struct {
	start int // offset of the ESC byte
	end   int // offset just past the final 'm'
	codes []int
}

// sgrScanner walks a string for SGR sequences (ESC [ params m). It owns its
// position explicitly instead of relying on shared regexp state.
type sgrScanner struct {
	input string
	pos   int
}

// next returns the next SGR sequence at or after the current position and
// advances past it.
func (sc *sgrScanner) next() (sgrMatch, bool) {
	s := sc.input
	for i := sc.pos; i < len(s); i++ {
		if s[i] != escByte || i+1 >= len(s) || s[i+1] != '[' {
			continue
		}
		j := i + 2
		// '-' is accepted so malformed negative color components still
		// parse as parameters and clamp instead of leaking into the text.
		for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == ';' || s[j] == '-') {
			j++
		}
		if j >= len(s) || s[j] != 'm' {
			continue
		}
		m := sgrMatch{start: i, end: j + 1, codes: parseCodes(s[i+2 : j])}
		sc.pos = m.end
		return m, true
	}
	sc.pos = len(s)
	return sgrMatch{}, false
}

// parseCodes splits a semicolon-separated SGR parameter list. Tokens that do
// not parse as integers become codeNoOp so the decoder skips them.
func parseCodes(params string) []int {
	tokens := strings.Split(params, ";")
	codes := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			n = codeNoOp
		}
		codes[i] = n
	}
	return codes
}
