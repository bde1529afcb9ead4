package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Chart  key.Binding
	Quit   key.Binding
}

type formKeyMap struct {
	PrevField    key.Binding
	NextField    key.Binding
	DropdownUp   key.Binding
	DropdownDown key.Binding
	Enter        key.Binding
	Save         key.Binding
	Backspace    key.Binding
	Cancel       key.Binding
}

type chartKeyMap struct {
	Next key.Binding
	Back key.Binding
}

type keyMap struct {
	ForceQuit key.Binding
	List      listKeyMap
	Form      formKeyMap
	Chart     chartKeyMap
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		List: listKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Add: key.NewBinding(
				key.WithKeys("a"),
				key.WithHelp("a", "add"),
			),
			Edit: key.NewBinding(
				key.WithKeys("e"),
				key.WithHelp("e", "edit"),
			),
			Delete: key.NewBinding(
				key.WithKeys("d"),
				key.WithHelp("d", "delete"),
			),
			Chart: key.NewBinding(
				key.WithKeys("g"),
				key.WithHelp("g", "charts"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q"),
				key.WithHelp("q", "quit"),
			),
		},
		Form: formKeyMap{
			PrevField: key.NewBinding(
				key.WithKeys("up"),
				key.WithHelp("↑", "prev field"),
			),
			NextField: key.NewBinding(
				key.WithKeys("down"),
				key.WithHelp("↓", "next field"),
			),
			DropdownUp: key.NewBinding(
				key.WithKeys("k"),
				key.WithHelp("k", "option up"),
			),
			DropdownDown: key.NewBinding(
				key.WithKeys("j"),
				key.WithHelp("j", "option down"),
			),
			Enter: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "next/save"),
			),
			Save: key.NewBinding(
				key.WithKeys("ctrl+s"),
				key.WithHelp("ctrl+s", "save"),
			),
			Backspace: key.NewBinding(
				key.WithKeys("backspace"),
				key.WithHelp("backspace", "delete char"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
		Chart: chartKeyMap{
			Next: key.NewBinding(
				key.WithKeys("tab"),
				key.WithHelp("tab", "switch chart"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back to list"),
			),
		},
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Chart, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevField, k.NextField, k.DropdownUp, k.DropdownDown, k.Enter, k.Save, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Backspace}}
}

func (k chartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back}
}

func (k chartKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
