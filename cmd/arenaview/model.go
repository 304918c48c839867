package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/trace"
)

// logLines is how many executed operations the log panel shows.
const logLines = 8

// Model is the arenaview TUI state: a parsed trace, the arena being stepped,
// and the results so far. Stepping back is implemented by replaying the
// trace prefix into a fresh arena.
type Model struct {
	tracePath  string
	capacity   int
	maxRegions int

	ops     []trace.Op
	pos     int // number of executed ops
	results []trace.Result

	a      *arena.Arena
	runner *trace.Runner

	keys  KeyMap
	help  help.Model
	width int
}

// NewModel loads the trace and prepares an empty arena.
func NewModel(tracePath string, capacity, maxRegions int) (Model, error) {
	ops, err := trace.ParseFile(tracePath)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		tracePath:  tracePath,
		capacity:   capacity,
		maxRegions: maxRegions,
		ops:        ops,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		width:      80,
	}
	m.reset()
	return m, nil
}

// reset discards the arena and replays nothing.
func (m *Model) reset() {
	m.a = arena.New(m.capacity, m.maxRegions)
	m.runner = trace.NewRunner(m.a)
	m.pos = 0
	m.results = m.results[:0]
}

// replayTo resets and replays the first n operations.
func (m *Model) replayTo(n int) {
	m.reset()
	for m.pos < n && m.pos < len(m.ops) {
		m.step()
	}
}

// step executes the next operation, if any.
func (m *Model) step() {
	if m.pos >= len(m.ops) {
		return
	}
	m.results = append(m.results, m.runner.Step(m.ops[m.pos]))
	m.pos++
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Step):
			m.step()
		case key.Matches(msg, m.keys.Back):
			if m.pos > 0 {
				m.replayTo(m.pos - 1)
			}
		case key.Matches(msg, m.keys.RunAll):
			for m.pos < len(m.ops) {
				m.step()
			}
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("arenaview  %s  op %d/%d", m.tracePath, m.pos, len(m.ops))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(m.storeView()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.statsView()),
		" ",
		panelStyle.Render(m.logView()),
	))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// storeView renders the backing store as a colored cell bar: one cell per
// capacity/width bytes, filled when any byte under it is allocated.
func (m Model) storeView() string {
	width := m.width - 6
	if width < 16 {
		width = 16
	}
	if width > 120 {
		width = 120
	}

	cells := make([]bool, width)
	for _, s := range m.a.Snapshot() {
		if !s.Used {
			continue
		}
		lo := s.Off * width / m.capacity
		hi := (s.End() - 1) * width / m.capacity
		for i := lo; i <= hi && i < width; i++ {
			cells[i] = true
		}
	}

	var bar strings.Builder
	for _, used := range cells {
		if used {
			bar.WriteString(usedStyle.Render("█"))
		} else {
			bar.WriteString(freeStyle.Render("░"))
		}
	}

	u := m.a.Usage()
	return fmt.Sprintf("%s\n%s %s",
		bar.String(),
		labelStyle.Render("store"),
		valueStyle.Render(fmt.Sprintf("%d/%d bytes used, %d regions",
			u.LiveBytes, u.Capacity, u.Regions)))
}

// statsView renders the allocator counters.
func (m Model) statsView() string {
	s := m.a.Stats()
	u := m.a.Usage()

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
	}
	lines := []string{
		row("alloc", fmt.Sprintf("%d (%d zeroed)", s.AllocCalls, s.ZeroCalls)),
		row("free", fmt.Sprintf("%d", s.FreeCalls)),
		row("realloc", fmt.Sprintf("%d (%d moved)", s.ReallocCalls, s.Relocations)),
		row("refused", fmt.Sprintf("%d oom, %d index", s.FailedOOM, s.FailedIndexFull)),
		row("regions", fmt.Sprintf("%d/%d (peak %d)", u.Regions, u.MaxRegions, s.PeakRegions)),
		row("largest gap", fmt.Sprintf("%d bytes of %d free", u.LargestGap, u.FreeBytes)),
		row("frag", fmt.Sprintf("%.1f%%", u.Frag*100)),
	}
	return strings.Join(lines, "\n")
}

// logView renders the tail of executed operations.
func (m Model) logView() string {
	if len(m.results) == 0 {
		return labelStyle.Render("no operations executed")
	}
	start := len(m.results) - logLines
	if start < 0 {
		start = 0
	}
	var lines []string
	for _, res := range m.results[start:] {
		op := res.Op
		var line string
		switch {
		case res.Err != nil:
			line = errStyle.Render(fmt.Sprintf("%s %s: %v", op.Kind, op.Name, res.Err))
		case op.Kind == trace.KindFree:
			line = okStyle.Render(fmt.Sprintf("%s %s", op.Kind, op.Name))
		default:
			line = okStyle.Render(fmt.Sprintf("%s %s %d -> @%d", op.Kind, op.Name, op.Size, res.Off))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
