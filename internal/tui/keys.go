package tui

import "github.com/charmbracelet/bubbles/key"

type planKeys struct {
	Next, Prev, AddRow, RemoveRow, Submit, Results, Theme, Quit key.Binding
}

func (k planKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.AddRow, k.RemoveRow, k.Submit, k.Results, k.Theme, k.Quit}
}

func (k planKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultPlanKeys = planKeys{
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	AddRow:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add subject")),
	RemoveRow: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove subject")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plan")),
	Results:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "browse plan")),
	Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type resultKeys struct {
	Up, Down, Open, Back, Theme, Quit key.Binding
}

func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Theme, k.Quit}
}

func (k resultKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultResultKeys = resultKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev")),
	Down:  key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next")),
	Open:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
	Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "edit form")),
	Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type focusKeys struct {
	Start, Pause, Skip, Noise, VolUp, VolDown, WorkUp, WorkDown, BreakUp, BreakDown, Theme, Back, Quit key.Binding
}

func (k focusKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Skip, k.Noise, k.Back, k.Quit}
}

func (k focusKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Skip},
		{k.Noise, k.VolUp, k.VolDown},
		{k.WorkUp, k.WorkDown, k.BreakUp, k.BreakDown},
		{k.Theme, k.Back, k.Quit},
	}
}

var defaultFocusKeys = focusKeys{
	Start:     key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s/space", "start")),
	Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
	Skip:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
	Noise:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "noise")),
	VolUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
	VolDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
	WorkUp:    key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "work +1m")),
	WorkDown:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "work -1m")),
	BreakUp:   key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "break +1m")),
	BreakDown: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break -1m")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
