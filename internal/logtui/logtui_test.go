package logtui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		scroll    int
		wantStart int
		wantEnd   int
	}{
		{name: "empty", total: 0, available: 10, scroll: 0, wantStart: 0, wantEnd: 0},
		{name: "fits", total: 5, available: 10, scroll: 0, wantStart: 0, wantEnd: 5},
		{name: "tail", total: 100, available: 10, scroll: 0, wantStart: 90, wantEnd: 100},
		{name: "scrolled", total: 100, available: 10, scroll: 20, wantStart: 70, wantEnd: 80},
		{name: "scroll past top", total: 100, available: 10, scroll: 500, wantStart: 0, wantEnd: 10},
		{name: "negative scroll", total: 100, available: 10, scroll: -3, wantStart: 90, wantEnd: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := windowBounds(tt.total, tt.available, tt.scroll)
			require.Equal(t, tt.wantStart, start)
			require.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestLevelOf(t *testing.T) {
	require.Equal(t, "ERROR", levelOf("[2026-01-02T10:00:00+00:00][ERROR] boom"))
	require.Equal(t, "DEBUG", levelOf("[2026-01-02T10:00:00+00:00][DEBUG] noise"))
	require.Equal(t, "", levelOf("plain text line"))
	require.Equal(t, "", levelOf("[unclosed"))
}

func TestVisibleLinesFiltersVerbose(t *testing.T) {
	m := model{
		lines: []string{
			"[2026-01-02T10:00:00+00:00][INFO] kept",
			"[2026-01-02T10:00:01+00:00][DEBUG] dropped",
			"[2026-01-02T10:00:02+00:00][TRACE] dropped",
			"[2026-01-02T10:00:03+00:00][ERROR] kept",
		},
	}
	require.Len(t, m.visibleLines(), 2)

	m.showVerbose = true
	require.Len(t, m.visibleLines(), 4)
}

func TestSplitLines(t *testing.T) {
	require.Nil(t, splitLines(""))
	require.Nil(t, splitLines("\n"))
	require.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
}

func TestScrollClamped(t *testing.T) {
	m := model{lines: []string{"a", "b", "c"}}
	m.scrollBy(10)
	require.Equal(t, 3, m.scroll)
	m.scrollBy(-99)
	require.Equal(t, 0, m.scroll)
}
