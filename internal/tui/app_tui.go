package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/tracker"
)

const appTitle = "Job Application Tracker"

type Options struct {
	Theme    UITheme
	Version  string
	DataPath string
}

type appModel struct {
	tracker     *tracker.Tracker
	table       recordTable
	keys        keyMap
	help        help.Model
	width       int
	height      int
	status      string
	statusError bool
	theme       UITheme
	appVersion  string
	dataPath    string
}

// RunApp runs the interactive tracker until the user quits. The tracker is
// mutated in place and saves through its own Saver.
func RunApp(tr *tracker.Tracker, opts Options) error {
	m := newAppModel(tr, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newAppModel(tr *tracker.Tracker, opts Options) appModel {
	th := opts.Theme.withDefaults()
	h := help.New()
	h.ShowAll = false
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(th.HelpKey))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(th.HelpText))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))
	m := appModel{
		tracker:    tr,
		table:      newRecordTable(),
		keys:       defaultKeyMap(),
		help:       h,
		status:     fmt.Sprintf("Loaded %d applications", tr.Len()),
		theme:      th,
		appVersion: opts.Version,
		dataPath:   opts.DataPath,
	}
	m.syncTable()
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncTable()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.tracker.Quit()
			return m, tea.Quit
		}
		m = m.dispatch(msg)
		m.syncTable()
		if m.tracker.ShouldQuit() {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) syncTable() {
	m.table.setHeight(m.listBodyHeight())
	cursor, _ := m.tracker.Cursor()
	m.table.ensureVisible(cursor, m.tracker.Len())
}

func (m *appModel) setStatus(text string) {
	m.status = text
	m.statusError = false
}

func (m *appModel) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusError = true
}

func (m appModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	return w, h
}

// listBodyHeight is the height left for the table after the header, the
// selection detail line, help and status.
func (m appModel) listBodyHeight() int {
	_, h := m.size()
	body := h - 5
	if body < 5 {
		body = 5
	}
	return body
}

func (m appModel) View() string {
	if m.tracker.ShouldQuit() {
		return ""
	}
	width, _ := m.size()

	out := []string{m.renderHeader(width)}
	switch m.tracker.View() {
	case tracker.ViewForm:
		out = append(out, renderFormView(m.tracker, width, m.theme))
		out = append(out, m.help.View(m.keys.Form))
	case tracker.ViewChart:
		out = append(out, renderChartView(m.tracker, width, m.theme))
		out = append(out, m.help.View(m.keys.Chart))
	default:
		out = append(out, m.table.render(m.tracker.Applications(), m.cursorIndex(), width, m.theme))
		out = append(out, m.renderSelectionDetail(width))
		out = append(out, m.help.View(m.keys.List))
	}

	statusColor := m.theme.StatusText
	if m.statusError {
		statusColor = m.theme.Danger
	}
	out = append(out, lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(clampLine(m.status, width)))
	return strings.Join(out, "\n") + "\n"
}

func (m appModel) cursorIndex() int {
	i, ok := m.tracker.Cursor()
	if !ok {
		return -1
	}
	return i
}

func (m appModel) renderHeader(width int) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Title)).Bold(true).Render(appTitle)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TextMuted))
	left := title + "  " + muted.Render(formatVersionLabel(m.appVersion))
	right := muted.Render(fmt.Sprintf("%d applications | %s", m.tracker.Len(), m.tracker.View()))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderSelectionDetail(width int) string {
	a, ok := m.tracker.Selected()
	if !ok {
		return colorizeDetailLine("File: "+m.dataPath, m.theme)
	}
	line := fmt.Sprintf("Notes: %s", a.Notes)
	if strings.TrimSpace(a.Notes) == "" {
		line = fmt.Sprintf("Resume modified: %s", yesNo(a.ResumeModified))
	} else {
		line = fmt.Sprintf("Resume modified: %s | %s", yesNo(a.ResumeModified), line)
	}
	return colorizeDetailLine(clampLine(line, width), m.theme)
}

func formatVersionLabel(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "vdev"
	}
	if strings.HasPrefix(trimmed, "v") {
		return trimmed
	}
	return "v" + trimmed
}

func panelInnerWidth(totalWidth int) int {
	w := totalWidth - 4
	if w < 1 {
		return 1
	}
	return w
}

func clampLine(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return truncate(s, 1)
	}
	return truncate(s, maxWidth)
}
