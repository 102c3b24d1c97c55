package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRenderFromStdin(t *testing.T) {
	out := runCommand(t, "\x1b[31mred\x1b[0m plain", "render")
	require.Equal(t, `<span style="color: #c91414">red</span> plain`+"\n", out)
}

func TestRenderStripFlag(t *testing.T) {
	out := runCommand(t, "\x1b[31mred\x1b[0m\x1b[2J done", "render", "--strip")
	require.Equal(t, "red done\n", out)
}

func TestRenderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	require.NoError(t, os.WriteFile(path, []byte("\x1b[1mbold\x1b[0m"), 0o644))

	out := runCommand(t, "", "render", path)
	require.Equal(t, `<span style="font-weight: 600">bold</span>`+"\n", out)
}

func TestRenderMissingFile(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, cmd.Execute())
}

func TestSQLFormat(t *testing.T) {
	out := runCommand(t, "select id from runs where ok = 1", "sql", "format")
	require.Equal(t, "SELECT id\nFROM runs\nWHERE ok = 1\n", out)
}

func TestSQLHighlight(t *testing.T) {
	out := runCommand(t, "select 'x'", "sql", "highlight")
	require.Contains(t, out, `<span style="color: #569cd6">select</span>`)
	require.Contains(t, out, `<span style="color: #ce9178">&#39;x&#39;</span>`)
}

func TestLogsReadsHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BVCONSOLE_GLOBAL_HOME_DIR", home)
	logPath := filepath.Join(home, "logs", "desktop.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	content := "[2026-01-02T10:00:00+00:00][INFO] started\n[2026-01-02T10:00:01+00:00][DEBUG] noise\n"
	require.NoError(t, os.WriteFile(logPath, []byte(content), 0o644))

	out := runCommand(t, "", "logs")
	require.Contains(t, out, "started")
	require.NotContains(t, out, "noise")

	out = runCommand(t, "", "logs", "--verbose")
	require.Contains(t, out, "noise")
}

func TestLogsHTML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BVCONSOLE_GLOBAL_HOME_DIR", home)
	logPath := filepath.Join(home, "logs", "desktop.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte("\x1b[31m[2026-01-02T10:00:00+00:00][ERROR] boom\x1b[0m\n"), 0o644))

	out := runCommand(t, "", "logs", "--html")
	require.Contains(t, out, `<span style="color: #c91414">`)
	require.Contains(t, out, "boom")
}

func TestLogsClear(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BVCONSOLE_GLOBAL_HOME_DIR", home)
	logPath := filepath.Join(home, "logs", "desktop.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte("old\n"), 0o644))

	runCommand(t, "", "logs", "clear")

	_, err := os.Stat(logPath)
	require.True(t, os.IsNotExist(err))
}
