package ansi

import "fmt"

// Color is a resolved display color in "#rrggbb" form. The empty string
// means the channel is unset and the terminal default applies.
type Color string

// Default colors match the dark theme the desktop webview ships with.
const (
	defaultForeground Color = "#d4d4d4"
	defaultBackground Color = "#1e1e1e"
)

// base16 holds ANSI colors 0-7 followed by their bright variants 8-15.
// Red (index 1) is the value the desktop error styling was tuned around;
// the rest of the table uses the same component scheme.
var base16 = [16]Color{
	"#000000", // black
	"#c91414", // red
	"#14c914", // green
	"#c9c914", // yellow
	"#1414c9", // blue
	"#c914c9", // magenta
	"#14c9c9", // cyan
	"#d4d4d4", // white
	"#767676", // bright black
	"#ff5f5f", // bright red
	"#5fff5f", // bright green
	"#ffff5f", // bright yellow
	"#5f5fff", // bright blue
	"#ff5fff", // bright magenta
	"#5fffff", // bright cyan
	"#ffffff", // bright white
}

// basicColor resolves a 16-color table index.
func basicColor(idx int) (Color, bool) {
	if idx < 0 || idx > 15 {
		return "", false
	}
	return base16[idx], true
}

// xtermColor resolves an index into the 256-color xterm palette:
// 0-15 are the standard colors, 16-231 the 6x6x6 cube with component
// values 0,95,135,175,215,255, and 232-255 a 24-step gray ramp.
func xtermColor(idx int) (Color, bool) {
	switch {
	case idx < 0 || idx > 255:
		return "", false
	case idx < 16:
		return base16[idx], true
	case idx < 232:
		c := idx - 16
		return hexColor(cubeLevel(c/36), cubeLevel(c%36/6), cubeLevel(c%6)), true
	default:
		v := 8 + (idx-232)*10
		return hexColor(v, v, v), true
	}
}

// cubeLevel maps a 0-5 cube coordinate to its intensity.
func cubeLevel(c int) int {
	if c == 0 {
		return 0
	}
	return 55 + c*40
}

// rgbColor builds a truecolor value, clamping each component to [0,255].
func rgbColor(r, g, b int) Color {
	return hexColor(clamp8(r), clamp8(g), clamp8(b))
}

func hexColor(r, g, b int) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
