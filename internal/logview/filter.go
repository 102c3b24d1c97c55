package logview

import "strings"

// FilterVerbose removes DEBUG/TRACE lines from log text unless showVerbose
// is set. Lines that don't carry a recognizable level tag are kept.
func FilterVerbose(text string, showVerbose bool) string {
	if showVerbose || text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isVerboseLine(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// isVerboseLine matches the [timestamp][LEVEL] prefix the desktop log uses.
func isVerboseLine(line string) bool {
	level := lineLevel(line)
	return level == LevelDebug || level == LevelTrace
}

// lineLevel extracts the LEVEL tag from a [timestamp][LEVEL] prefix, or ""
// when the line doesn't match.
func lineLevel(line string) string {
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
