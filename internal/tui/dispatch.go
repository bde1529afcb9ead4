package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jobtrack/internal/tracker"
)

// dispatch maps one key to at most one tracker operation for the current
// view. Keys with no binding in that view are ignored.
func (m appModel) dispatch(msg tea.KeyMsg) appModel {
	switch m.tracker.View() {
	case tracker.ViewForm:
		return m.dispatchForm(msg)
	case tracker.ViewChart:
		return m.dispatchChart(msg)
	default:
		return m.dispatchList(msg)
	}
}

func (m appModel) dispatchList(msg tea.KeyMsg) appModel {
	tr := m.tracker
	keys := m.keys.List
	switch {
	case key.Matches(msg, keys.Quit):
		tr.Quit()
	case key.Matches(msg, keys.Add):
		tr.StartAdd()
		m.setStatus("New application")
	case key.Matches(msg, keys.Edit):
		if a, ok := tr.Selected(); ok {
			tr.StartEdit()
			m.setStatus("Editing " + a.CompanyName)
		}
	case key.Matches(msg, keys.Delete):
		a, ok := tr.Selected()
		if !ok {
			return m
		}
		if err := tr.DeleteSelected(); err != nil {
			m.setError(err)
			return m
		}
		m.setStatus("Deleted " + a.CompanyName)
	case key.Matches(msg, keys.Chart):
		tr.ShowChart()
		m.setStatus("Charts")
	case key.Matches(msg, keys.Up):
		tr.SelectPrevious()
	case key.Matches(msg, keys.Down):
		tr.SelectNext()
	}
	return m
}

func (m appModel) dispatchForm(msg tea.KeyMsg) appModel {
	tr := m.tracker
	keys := m.keys.Form
	switch {
	case key.Matches(msg, keys.Cancel):
		tr.CancelForm()
		m.setStatus("Cancelled")
	case key.Matches(msg, keys.Save):
		m.afterCommit(tr.CommitForm())
	case key.Matches(msg, keys.Enter):
		m.afterCommit(tr.CommitField())
	case key.Matches(msg, keys.PrevField):
		tr.PrevField()
	case key.Matches(msg, keys.NextField):
		tr.NextField()
	case key.Matches(msg, keys.Backspace):
		tr.Backspace()
	case key.Matches(msg, keys.DropdownUp):
		tr.DropdownUp()
	case key.Matches(msg, keys.DropdownDown):
		tr.DropdownDown()
	case msg.Type == tea.KeySpace:
		tr.TypeRune(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			tr.TypeRune(r)
		}
	}
	return m
}

func (m appModel) dispatchChart(msg tea.KeyMsg) appModel {
	switch {
	case key.Matches(msg, m.keys.Chart.Back):
		m.tracker.ShowList()
		m.setStatus("Ready")
	case key.Matches(msg, m.keys.Chart.Next):
		m.tracker.NextChart()
	}
	return m
}

// afterCommit reports the outcome of a form commit. A commit that left the
// form open was either a field advance or a blank company name.
func (m *appModel) afterCommit(err error) {
	if err != nil {
		m.setError(err)
		return
	}
	if m.tracker.View() == tracker.ViewList {
		m.setStatus("Saved")
	}
}
