package ansi

import "strings"

// styleString renders the state as inline CSS declarations, or "" when the
// text needs no wrapping.
//
// Hidden text short-circuits to a zero-opacity declaration. Inverse video is
// a presentation-time swap: the stored colors are never mutated, and unset
// channels fall back to the theme defaults so inversion always has concrete
// colors to exchange.
func (s *State) styleString() string {
	if s.Hidden {
		return "opacity: 0"
	}

	fg, bg := s.Foreground, s.Background
	if s.Inverse {
		if fg == "" {
			fg = defaultForeground
		}
		if bg == "" {
			bg = defaultBackground
		}
		fg, bg = bg, fg
	}

	var parts []string
	if s.Bold {
		parts = append(parts, "font-weight: 600")
	}
	if s.Dim && !s.Bold {
		parts = append(parts, "opacity: 0.75")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic")
	}
	if s.Underline || s.Strike {
		deco := make([]string, 0, 2)
		if s.Underline {
			deco = append(deco, "underline")
		}
		if s.Strike {
			deco = append(deco, "line-through")
		}
		parts = append(parts, "text-decoration: "+strings.Join(deco, " "))
	}
	if fg != "" {
		parts = append(parts, "color: "+string(fg))
	}
	if bg != "" {
		parts = append(parts, "background-color: "+string(bg))
	}
	return strings.Join(parts, "; ")
}
