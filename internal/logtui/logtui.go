// Package logtui is a terminal viewer for the desktop log: it polls a log
// source and renders the tail with level coloring, verbose toggling, and
// scrollback.
package logtui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/biovault/bvconsole/internal/ansi"
	"github.com/biovault/bvconsole/internal/logview"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxBytes     = 512 * 1024
	fetchTimeout        = 2 * time.Second
	scrollStep          = 1
)

// Config controls the log viewer.
type Config struct {
	Title        string
	PollInterval time.Duration
	MaxBytes     int64
	ShowVerbose  bool
}

// Run starts the viewer and blocks until the user quits.
func Run(source logview.Source, cfg Config) error {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.Title == "" {
		cfg.Title = "desktop.log"
	}

	program := tea.NewProgram(newModel(source, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	source       logview.Source
	title        string
	pollInterval time.Duration
	maxBytes     int64
	showVerbose  bool

	width  int
	height int

	lines    []string
	scroll   int
	err      error
	quitting bool
}

type refreshMsg struct {
	lines []string
	err   error
}

type tickMsg struct{}

func newModel(source logview.Source, cfg Config) model {
	return model{
		source:       source,
		title:        cfg.Title,
		pollInterval: cfg.PollInterval,
		maxBytes:     cfg.MaxBytes,
		showVerbose:  cfg.ShowVerbose,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.fetchCmd(), m.tickCmd())
	case refreshMsg:
		m.err = msg.err
		if msg.err == nil {
			m.lines = msg.lines
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "v":
		m.showVerbose = !m.showVerbose
		return m, nil
	case "r":
		return m, m.fetchCmd()
	case "k", "up":
		m.scrollBy(scrollStep)
		return m, nil
	case "j", "down":
		m.scrollBy(-scrollStep)
		return m, nil
	case "pgup", "ctrl+u":
		m.scrollBy(m.pageSize())
		return m, nil
	case "pgdown", "ctrl+d":
		m.scrollBy(-m.pageSize())
		return m, nil
	case "home", "g":
		m.scroll = len(m.lines)
		return m, nil
	case "end", "G":
		m.scroll = 0
		return m, nil
	default:
		return m, nil
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	width := m.effectiveWidth()
	visible := m.visibleLines()

	header := headerStyle.Render(truncateLine(fmt.Sprintf(
		"%s  lines:%d verbose:%s  keys: j/k scroll v verbose r refresh q quit",
		m.title, len(visible), onOff(m.showVerbose),
	), width-2))

	available := m.pageSize()
	start, end := windowBounds(len(visible), available, m.scroll)

	body := make([]string, 0, available)
	for _, line := range visible[start:end] {
		body = append(body, truncateLine(styleLine(line), width))
	}
	if len(body) == 0 {
		body = append(body, mutedStyle.Render("Log is empty."))
	}
	for len(body) < available {
		body = append(body, "")
	}

	parts := []string{header}
	parts = append(parts, body...)
	if m.err != nil {
		parts = append(parts, errorStyle.Render(truncateLine("Error: "+m.err.Error(), width)))
	}
	return strings.Join(parts, "\n")
}

// visibleLines applies the verbose filter to the fetched tail.
func (m model) visibleLines() []string {
	if m.showVerbose {
		return m.lines
	}
	filtered := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		if levelOf(line) == "DEBUG" || levelOf(line) == "TRACE" {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

func (m *model) scrollBy(delta int) {
	m.scroll += delta
	if m.scroll < 0 {
		m.scroll = 0
	}
	if limit := len(m.lines); m.scroll > limit {
		m.scroll = limit
	}
}

func (m model) pageSize() int {
	height := m.effectiveHeight() - 2
	if height < 1 {
		return 1
	}
	return height
}

func (m model) effectiveWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}

func (m model) effectiveHeight() int {
	if m.height <= 0 {
		return 30
	}
	return m.height
}

func (m model) fetchCmd() tea.Cmd {
	source := m.source
	maxBytes := m.maxBytes
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		text, err := source.FetchLogText(ctx, maxBytes)
		if err != nil {
			return refreshMsg{err: err}
		}
		return refreshMsg{lines: splitLines(ansi.Strip(text))}
	}
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// windowBounds picks the slice of lines to show: scroll counts lines back
// from the tail, and the window never runs past either edge.
func windowBounds(total, available, scroll int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if available < 1 {
		available = 1
	}
	if scroll < 0 {
		scroll = 0
	}
	end := total - scroll
	if end < available {
		end = available
	}
	if end > total {
		end = total
	}
	start := end - available
	if start < 0 {
		start = 0
	}
	return start, end
}

func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
