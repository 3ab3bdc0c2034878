package viz

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ccm/internal/edm"
)

// PointMsg reports one finished library length of one direction.
type PointMsg struct {
	Direction edm.Direction
	Point     edm.Point
}

// DoneMsg ends a watched run.
type DoneMsg struct {
	Result *edm.Result
	Err    error
}

type tickMsg time.Time

// WatchModel shows a cross mapping run as its library lengths finish.
type WatchModel struct {
	title   string
	total   int
	updates <-chan tea.Msg
	order   []edm.Direction
	curves  map[edm.Direction]edm.Curve
	theme   int
	frame   int
	done    bool
	err     error
	result  *edm.Result
	width   int
}

// NewWatchModel expects total points per direction, delivered on updates as
// PointMsg values followed by one DoneMsg.
func NewWatchModel(title string, total int, updates <-chan tea.Msg) WatchModel {
	return WatchModel{
		title:   title,
		total:   total,
		updates: updates,
		order:   []edm.Direction{edm.DirXFromY, edm.DirYFromX},
		curves:  make(map[edm.Direction]edm.Curve),
		width:   60,
	}
}

func waitFor(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return DoneMsg{}
		}
		return msg
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(waitFor(m.updates), tick())
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = max(msg.Width-20, 20)
		return m, nil

	case PointMsg:
		m.curves[msg.Direction] = insertPoint(m.curves[msg.Direction], msg.Point)
		return m, waitFor(m.updates)

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.result = msg.Result
		return m, nil

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, tick()
	}
	return m, nil
}

func insertPoint(c edm.Curve, p edm.Point) edm.Curve {
	i, _ := slices.BinarySearchFunc(c, p.L, func(q edm.Point, l int) int { return q.L - l })
	return slices.Insert(c, i, p)
}

// Curves returns what has arrived so far in direction order.
func (m WatchModel) Curves() []edm.Labeled {
	out := make([]edm.Labeled, 0, len(m.order))
	for _, dir := range m.order {
		out = append(out, edm.Labeled{Name: string(dir), Curve: m.curves[dir]})
	}
	return out
}

func (m WatchModel) finished() int {
	n := 0
	for _, c := range m.curves {
		n += len(c)
	}
	return n
}

func (m WatchModel) View() string {
	theme := Themes[m.theme]
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(m.title))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StatusFailed.Render("failed: " + m.err.Error()))
	case m.done:
		b.WriteString(StatusDone.Render("done"))
		if m.result != nil {
			b.WriteString(MetricLabel.Render("  dominant "))
			b.WriteString(MetricValue.Render(m.result.Dominant()))
		}
	default:
		b.WriteString(StatusRunning.Render(Spinner(m.frame) + " scanning"))
	}
	b.WriteString("\n")

	if m.total > 0 {
		want := m.total * len(m.order)
		b.WriteString(ProgressBar(float64(m.finished())/float64(want), 30))
		b.WriteString(MetricLabel.Render(fmt.Sprintf(" %d/%d", m.finished(), want)))
		b.WriteString("\n\n")
	}

	curves := m.Curves()
	for _, c := range curves {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-9s ", c.Name)))
		b.WriteString(Sparkline(c.Curve.Rhos()))
		b.WriteString("\n")
	}
	if plot := RenderCurves(curves, theme, m.width, 10); plot != "" {
		b.WriteString("\n")
		b.WriteString(plot)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(KeyHint.Render("t theme · q quit"))
	return b.String()
}

// SetTheme selects a theme by name; unknown names keep the current one.
func (m *WatchModel) SetTheme(name string) {
	for i, t := range Themes {
		if t.Name == name {
			m.theme = i
			return
		}
	}
}
