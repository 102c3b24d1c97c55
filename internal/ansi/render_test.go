package ansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPlainTextIsEscapedIdentity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world\n", "hello world\n"},
		{"escapes", `<b>&"quoted"&'s`, "&lt;b&gt;&amp;&quot;quoted&quot;&amp;&#39;s"},
		{"unicode", "héllo ✓", "héllo ✓"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderResetRoundTrip(t *testing.T) {
	got := Render("\x1b[31mred\x1b[0mplain")
	want := `<span style="color: #c91414">red</span>plain`
	require.Equal(t, want, got)
}

func TestRenderNoOpCodeOpensNoSpan(t *testing.T) {
	// Code 39 with no foreground set leaves the style empty.
	got := Render("before\x1b[39mafter")
	require.Equal(t, "beforeafter", got)
}

func TestRenderMultiRun(t *testing.T) {
	got := Render("\x1b[1;31mERROR\x1b[0m: \x1b[2mdetails\x1b[0m\n")
	want := `<span style="font-weight: 600; color: #c91414">ERROR</span>: ` +
		`<span style="opacity: 0.75">details</span>` + "\n"
	require.Equal(t, want, got)
}

func TestRenderInverseRoundTrip(t *testing.T) {
	got := Render("\x1b[7mswapped\x1b[27mnormal")
	want := `<span style="color: #1e1e1e; background-color: #d4d4d4">swapped</span>normal`
	require.Equal(t, want, got)
}

func TestRenderInverseUsesSetColors(t *testing.T) {
	// Inverse swaps at presentation time; turning it off restores the
	// original channel assignment.
	got := Render("\x1b[31;7min\x1b[27mout")
	want := `<span style="color: #1e1e1e; background-color: #c91414">in</span>` +
		`<span style="color: #c91414">out</span>`
	require.Equal(t, want, got)
}

func TestRenderTruecolor(t *testing.T) {
	got := Render("\x1b[38;2;10;20;30mx")
	require.Equal(t, `<span style="color: #0a141e">x</span>`, got)
}

func TestRenderTruecolorClampsComponents(t *testing.T) {
	got := Render("\x1b[38;2;300;-5;10mx")
	require.Equal(t, `<span style="color: #ff000a">x</span>`, got)
}

func TestRenderUnsupportedControlSequencesVanish(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clear screen", "a\x1b[2Jb", "ab"},
		{"cursor home", "a\x1b[Hb", "ab"},
		{"osc title", "\x1b]0;window title\x07visible text", "visible text"},
		{"bell", "ding\x07dong", "dingdong"},
		{"hide cursor", "a\x1b[?25lb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderMalformedParamsAreNoOps(t *testing.T) {
	got := Render("\x1b[31;;1mboth\x1b[0m")
	want := `<span style="font-weight: 600; color: #c91414">both</span>`
	require.Equal(t, want, got)
}

func TestRenderHiddenShortCircuits(t *testing.T) {
	got := Render("\x1b[1;31;8msecret\x1b[0m!")
	want := `<span style="opacity: 0">secret</span>!`
	require.Equal(t, want, got)
}

func TestRenderAdjacentSameStyleKeepsOneSpan(t *testing.T) {
	// A second SGR that computes the identical style must not split the span.
	got := Render("\x1b[31ma\x1b[31mb\x1b[0m")
	require.Equal(t, `<span style="color: #c91414">ab</span>`, got)
}

func TestRenderBackToBackSGREmitsNoEmptySpan(t *testing.T) {
	got := Render("\x1b[31m\x1b[1mtext\x1b[0m")
	require.Equal(t, `<span style="font-weight: 600; color: #c91414">text</span>`, got)
}

func TestRenderCRLFNormalized(t *testing.T) {
	require.Equal(t, "one\ntwo\nthree\n", Render("one\r\ntwo\rthree\r\n"))
}

func TestRenderNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"\x1b",
		"\x1b[",
		"\x1b[31",
		"\x1b[38;5m",
		"\x1b[38;2;1;2m",
		"\x1b]unterminated osc",
		"\x1b[;;;m",
		strings.Repeat("\x1b[31m", 100),
	}
	for _, in := range inputs {
		_ = Render(in) // must not panic
	}
}
