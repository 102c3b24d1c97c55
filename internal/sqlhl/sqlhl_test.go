package sqlhl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"select * from participants where id = 42",
		"SELECT name, count(*) FROM runs GROUP BY name -- tally\n",
		"insert into samples values ('it''s', 3.14, NULL)",
		"/* block\ncomment */ select 1",
		"select 'unterminated",
		`select "quoted ident" from t`,
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, tok := range Tokenize(in) {
			b.WriteString(tok.Text)
		}
		require.Equal(t, in, b.String(), "input: %q", in)
	}
}

func TestTokenizeKinds(t *testing.T) {
	tokens := Tokenize("select id, 'x' from t -- c")
	var kinds []Kind
	for _, tok := range tokens {
		if tok.Kind != KindWhitespace {
			kinds = append(kinds, tok.Kind)
		}
	}
	want := []Kind{KindKeyword, KindIdent, KindPunct, KindString, KindKeyword, KindIdent, KindComment}
	require.Equal(t, want, kinds)
}

func TestTokenizeStringEscape(t *testing.T) {
	tokens := Tokenize("'it''s'")
	require.Len(t, tokens, 1)
	require.Equal(t, KindString, tokens[0].Kind)
	require.Equal(t, "'it''s'", tokens[0].Text)
}

func TestFormatClauses(t *testing.T) {
	got := Format("select id, name from participants where age > 30 order by name desc limit 10")
	want := "SELECT id, name\nFROM participants\nWHERE age > 30\nORDER BY name DESC\nLIMIT 10"
	require.Equal(t, want, got)
}

func TestFormatJoinPhrase(t *testing.T) {
	got := Format("select * from a left outer join b on a.id = b.id")
	require.Contains(t, got, "\nLEFT OUTER JOIN b")
	require.Contains(t, got, "ON a.id = b.id")
	require.NotContains(t, got, "OUTER\n")
}

func TestFormatFunctionCall(t *testing.T) {
	got := Format("select count( * ) from runs")
	require.Equal(t, "SELECT count(*)\nFROM runs", got)
}

func TestFormatSubquery(t *testing.T) {
	got := Format("select * from (select id from t) x")
	require.Contains(t, got, "(SELECT id")
}

func TestFormatCollapsesWhitespace(t *testing.T) {
	got := Format("select\t\t1   ,\n\n2")
	require.Equal(t, "SELECT 1, 2", got)
}

func TestHighlightSpans(t *testing.T) {
	got := Highlight("select 'a' from t -- note")
	require.Contains(t, got, `<span style="color: #569cd6">select</span>`)
	require.Contains(t, got, `<span style="color: #ce9178">&#39;a&#39;</span>`)
	require.Contains(t, got, `<span style="color: #6a9955">-- note</span>`)
	require.Contains(t, got, " t ")
}

func TestHighlightEscapes(t *testing.T) {
	got := Highlight("select a < b")
	require.Contains(t, got, "a &lt; b")
	require.NotContains(t, got, "a < b")
}

func TestHighlightPlainTextPreserved(t *testing.T) {
	in := "update t set x = 1 where y <> 2"
	got := Highlight(in)
	stripped := strings.NewReplacer(
		`<span style="color: #569cd6">`, "",
		`<span style="color: #b5cea8">`, "",
		"</span>", "",
	).Replace(got)
	require.Equal(t, "update t set x = 1 where y &lt;&gt; 2", stripped)
}
