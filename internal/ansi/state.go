package ansi

// codeNoOp is the sentinel for parameter tokens that did not parse as
// integers. It matches no SGR code, so malformed tokens fall through the
// decoder untouched.
const codeNoOp = -1

// State accumulates SGR attributes across one render pass. A fresh State is
// the reset state: all attributes off, both color channels unset.
type State struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Strike    bool
	Inverse   bool
	Hidden    bool

	Foreground Color
	Background Color
}

// Reset restores the default state, as SGR code 0 does.
func (s *State) Reset() {
	*s = State{}
}

// Apply applies the parameter list of one SGR sequence in order. Unknown
// codes are no-ops. Bold and dim are mutually exclusive: setting either
// clears the other, since both render as weight/opacity on the same text.
func (s *State) Apply(codes []int) {
	for i := 0; i < len(codes); i++ {
		c := codes[i]
		switch {
		case c == 0:
			s.Reset()
		case c == 1:
			s.Bold, s.Dim = true, false
		case c == 2:
			s.Dim, s.Bold = true, false
		case c == 3:
			s.Italic = true
		case c == 4:
			s.Underline = true
		case c == 7:
			s.Inverse = true
		case c == 8:
			s.Hidden = true
		case c == 9:
			s.Strike = true
		case c == 22:
			s.Bold, s.Dim = false, false
		case c == 23:
			s.Italic = false
		case c == 24:
			s.Underline = false
		case c == 27:
			s.Inverse = false
		case c == 28:
			s.Hidden = false
		case c == 29:
			s.Strike = false
		case c >= 30 && c <= 37:
			s.Foreground, _ = basicColor(c - 30)
		case c == 38:
			i += s.applyExtended(codes, i, true)
		case c == 39:
			s.Foreground = ""
		case c >= 40 && c <= 47:
			s.Background, _ = basicColor(c - 40)
		case c == 48:
			i += s.applyExtended(codes, i, false)
		case c == 49:
			s.Background = ""
		case c >= 90 && c <= 97:
			s.Foreground, _ = basicColor(c - 90 + 8)
		case c >= 100 && c <= 107:
			s.Background, _ = basicColor(c - 100 + 8)
		}
	}
}

// applyExtended handles SGR 38/48 extended colors at codes[i] and returns
// how many extra parameters were consumed. Sub-mode 5 takes one palette
// index, sub-mode 2 takes literal R,G,B. An unrecognized sub-mode consumes
// nothing, so the next iteration re-reads it as a fresh code; that matches
// the shipped renderer.
func (s *State) applyExtended(codes []int, i int, foreground bool) int {
	if i+1 >= len(codes) {
		return 0
	}
	switch codes[i+1] {
	case 5:
		if i+2 < len(codes) {
			if c, ok := xtermColor(codes[i+2]); ok {
				s.setChannel(c, foreground)
			}
		}
		return 2
	case 2:
		if i+4 < len(codes) {
			s.setChannel(rgbColor(codes[i+2], codes[i+3], codes[i+4]), foreground)
		}
		return 4
	default:
		return 0
	}
}

func (s *State) setChannel(c Color, foreground bool) {
	if foreground {
		s.Foreground = c
	} else {
		s.Background = c
	}
}
