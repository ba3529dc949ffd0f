package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// defaultWidth is used before the first WindowSizeMsg arrives.
const defaultWidth = 120

type column struct {
	title string
	width int
}

var pingColumns = []column{
	{"IP", 20}, {"Status", 13}, {"Last", 10}, {"Avg", 10},
	{"Min", 10}, {"Max", 10}, {"Loss", 8}, {"Packets", 12},
}

var httpColumns = []column{
	{"IP", 20}, {"Status", 13}, {"Code", 15}, {"Last", 10}, {"Avg", 10},
	{"Size", 9}, {"Rate", 8}, {"Requests", 10}, {"Error", 31},
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderHostList(width*30/100),
		m.renderStatsTable(),
	)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with summary counts.
func (m Model) renderHeader() string {
	running := 0
	for _, h := range m.hosts {
		if h.Running {
			running++
		}
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("pingdeck")

	summary := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d hosts | %d selected | %d running", len(m.hosts), m.SelectedCount(), running))

	return HeaderStyle.Render(title + summary)
}

// renderHostList renders the left pane.
func (m Model) renderHostList(width int) string {
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	lines := []string{PaneTitleStyle.Render(fmt.Sprintf("Hosts (%d/%d)", m.SelectedCount(), len(m.hosts)))}
	if len(m.hosts) == 0 {
		lines = append(lines, LabelStyle.Render("No hosts"))
	}

	for i, h := range m.hosts {
		box := CheckboxOff
		if h.Selected {
			box = CheckboxOn
		}
		mark := " "
		if h.Running {
			mark = RunningStyle.Render(RunningMark)
		}

		line := fmt.Sprintf("%s %s %s", box, clip(h.Addr, inner-6), mark)
		style := lipgloss.NewStyle().Width(inner)
		if i == m.cursor {
			style = style.Inherit(CursorStyle)
		}
		lines = append(lines, style.Render(line))
	}

	return PaneStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderStatsTable renders the right pane: one row per selected host. The
// pane takes the natural width of its columns.
func (m Model) renderStatsTable() string {
	kind := m.session.Store().Kind()

	title := "Ping Statistics"
	cols := pingColumns
	if kind == stats.KindHTTP {
		title = "HTTP Statistics"
		cols = httpColumns
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = cell(TableHeaderStyle, c.width, c.title)
	}

	lines := []string{PaneTitleStyle.Render(title), strings.Join(header, "")}
	for _, h := range m.hosts {
		if !h.Selected {
			continue
		}
		st, ok := m.snapshot[h.Addr]
		if !ok {
			continue
		}
		sum := st.Summary()

		var values []string
		if kind == stats.KindHTTP {
			values = httpRow(h.Addr, sum)
		} else {
			values = pingRow(h.Addr, sum)
		}

		row := make([]string, len(cols))
		for i, c := range cols {
			style := ValueStyle
			if i == 1 {
				style = SeverityStyle(sum.Severity)
			}
			row[i] = cell(style, c.width, values[i])
		}
		lines = append(lines, strings.Join(row, ""))
	}

	return PaneStyle.Render(strings.Join(lines, "\n"))
}

func pingRow(addr string, s stats.Summary) []string {
	hasSamples := s.Samples > 0
	return []string{
		addr,
		s.Label,
		formatLatency(s.Last, s.HasLast),
		formatLatency(s.Avg, hasSamples),
		formatLatency(s.Min, hasSamples),
		formatLatency(s.Max, hasSamples),
		formatPercent(s.Rate),
		fmt.Sprintf("%d/%d", s.OK, s.Sent),
	}
}

func httpRow(addr string, s stats.Summary) []string {
	status := s.Status
	if s.Sent == 0 {
		status = "Not Started"
	}
	code := "-"
	if s.StatusCode != 0 {
		code = s.Label
	}
	return []string{
		addr,
		status,
		code,
		formatLatency(s.Last, s.HasLast),
		formatLatency(s.Avg, s.Samples > 0),
		formatSize(s.ContentSize),
		formatPercent(s.Rate),
		fmt.Sprintf("%d/%d", s.OK, s.Sent),
		formatError(s.LastError),
	}
}

// cell clips s so at least one space separates it from the next column,
// then pads it to width.
func cell(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Render(clip(s, width-1))
}

func clip(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

// renderFooter renders key help, the paused badge, the mode and the last
// export message.
func (m Model) renderFooter() string {
	parts := []string{m.help.ShortHelpView(m.keys.ShortHelp())}

	if m.session.Paused() {
		parts = append(parts, PausedStyle.Render(PausedMark))
	}

	mode := "ICMP"
	if m.session.Store().Kind() == stats.KindHTTP {
		mode = fmt.Sprintf("HTTP:%d", m.port)
	}
	parts = append(parts, "Mode: "+ModeStyle.Render(mode))

	footer := FooterStyle.Render(strings.Join(parts, " | "))
	if m.message != "" {
		style := MessageStyle
		if m.messageErr {
			style = ErrorMessageStyle
		}
		footer += "\n" + FooterStyle.Render(style.Render(m.message))
	}
	return footer
}
