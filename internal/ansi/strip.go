package ansi

import "strings"

// StripControl removes non-SGR terminal control sequences from s and
// normalizes \r\n and bare \r to \n. SGR sequences (ESC [ ... m) pass
// through untouched for the renderer to consume.
//
// Stripping is best-effort rather than full VT100: bell characters, OSC
// sequences (title setting and friends), cursor/screen CSI sequences, and
// charset designators are removed; anything else is left in place.
func StripControl(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '\x07':
			i++
		case '\r':
			b.WriteByte('\n')
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\x1b':
			if end, ok := controlSeqEnd(s, i); ok {
				i = end
			} else {
				b.WriteByte(s[i])
				i++
			}
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// Strip removes every escape sequence StripControl knows about plus SGR
// styling, leaving plain text. Useful when the output target is a terminal
// or test assertion rather than HTML.
func Strip(s string) string {
	s = StripControl(s)
	if !strings.ContainsRune(s, escByte) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	sc := sgrScanner{input: s}
	last := 0
	for {
		m, ok := sc.next()
		if !ok {
			break
		}
		b.WriteString(s[last:m.start])
		last = m.end
	}
	b.WriteString(s[last:])
	return b.String()
}

const escByte = '\x1b'

// controlSeqEnd reports the end of a strippable control sequence starting at
// s[i], or false when the bytes there should be passed through (including
// SGR sequences and anything unrecognized).
func controlSeqEnd(s string, i int) (int, bool) {
	if i+1 >= len(s) {
		return 0, false
	}
	switch s[i+1] {
	case ']':
		// OSC: ESC ] ... terminated by BEL or ESC \.
		for j := i + 2; j < len(s); j++ {
			if s[j] == '\x07' {
				return j + 1, true
			}
			if s[j] == escByte && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2, true
			}
		}
		return 0, false
	case '[':
		// CSI: strip cursor/screen control finals, keep SGR ('m') and
		// anything unknown.
		j := i + 2
		for j < len(s) && isCSIParam(s[j]) {
			j++
		}
		if j < len(s) && isStrippedFinal(s[j]) {
			return j + 1, true
		}
		return 0, false
	case '(', ')':
		// Charset designator: ESC ( X / ESC ) X.
		if i+2 < len(s) {
			return i + 3, true
		}
		return i + 2, true
	case '=', '<', '>':
		return i + 2, true
	default:
		return 0, false
	}
}

func isCSIParam(b byte) bool {
	return b >= '0' && b <= '9' || b == ';' || b == '?'
}

// isStrippedFinal reports whether b terminates a cursor/screen control
// sequence we discard: A-H, J, K, S, T, f, h, l, p, s, u, case-insensitive.
func isStrippedFinal(b byte) bool {
	switch b &^ 0x20 { // fold to upper case
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K', 'L', 'P', 'S', 'T', 'U':
		return true
	}
	return false
}
