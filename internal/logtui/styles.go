package logtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d4")).
			Background(lipgloss.Color("#2d2d2d")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c9c914"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// levelOf parses the level out of a "[ts][LEVEL] message" log line. Lines
// that don't match return "".
func levelOf(line string) string {
	if !strings.HasPrefix(line, "[") {
		return ""
	}
	end := strings.IndexByte(line, ']')
	if end < 0 || end+1 >= len(line) || line[end+1] != '[' {
		return ""
	}
	rest := line[end+2:]
	stop := strings.IndexByte(rest, ']')
	if stop < 0 {
		return ""
	}
	return rest[:stop]
}

func styleLine(line string) string {
	switch levelOf(line) {
	case "ERROR":
		return errorStyle.Render(line)
	case "WARN":
		return warnStyle.Render(line)
	case "DEBUG", "TRACE":
		return mutedStyle.Render(line)
	default:
		return line
	}
}

func truncateLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(line) <= width {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
