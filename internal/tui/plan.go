package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/ui"
)

// Input order: subject rows (name, hours) first, then start, end, hours/day.
func (m Model) inputCount() int { return len(m.rows)*2 + len(m.fields) }

func (m *Model) input(i int) *textinput.Model {
	if i < len(m.rows)*2 {
		r := &m.rows[i/2]
		if i%2 == 0 {
			return &r.name
		}
		return &r.hours
	}
	return &m.fields[i-len(m.rows)*2]
}

func (m *Model) focusInput() tea.Cmd {
	for i := 0; i < m.inputCount(); i++ {
		m.input(i).Blur()
	}
	if m.browsing {
		return nil
	}
	return m.input(m.cursor).Focus()
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	n := m.inputCount()
	m.cursor = (m.cursor + delta + n) % n
	return m.focusInput()
}

// Form snapshots the typed values.
func (m Model) Form() planform.Form {
	f := planform.Form{
		StartDate:   m.fields[0].Value(),
		EndDate:     m.fields[1].Value(),
		HoursPerDay: m.fields[2].Value(),
	}
	for _, r := range m.rows {
		f.Rows = append(f.Rows, planform.Row{Name: r.name.Value(), Hours: r.hours.Value()})
	}
	return f
}

func (m Model) updatePlan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.browsing {
		return m.updateResults(msg)
	}

	keys := defaultPlanKeys
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Quit):
			return m, tea.Quit
		case key.Matches(k, keys.Next):
			return m, m.moveCursor(1)
		case key.Matches(k, keys.Prev):
			return m, m.moveCursor(-1)
		case key.Matches(k, keys.AddRow):
			m.rows = append(m.rows, newRow())
			m.cursor = (len(m.rows) - 1) * 2
			return m, m.focusInput()
		case key.Matches(k, keys.RemoveRow):
			if m.cursor < len(m.rows)*2 && len(m.rows) > 1 {
				row := m.cursor / 2
				m.rows = append(m.rows[:row:row], m.rows[row+1:]...)
				if m.cursor >= len(m.rows)*2 {
					m.cursor = len(m.rows)*2 - 2
				}
				m.cursor -= m.cursor % 2
			}
			return m, m.focusInput()
		case key.Matches(k, keys.Theme):
			m.toggleTheme()
			return m, nil
		case key.Matches(k, keys.Results):
			if len(Targets(m.deps.Form.Result())) > 0 {
				m.browsing = true
				if m.selected < 0 {
					m.selected = 0
				}
			}
			return m, m.focusInput()
		case key.Matches(k, keys.Submit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	in := m.input(m.cursor)
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	m.err = ""
	req, err := m.deps.Form.Begin(m.Form())
	if err != nil {
		return nil
	}
	return requestPlan(m.deps.Backend, req)
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	keys := defaultResultKeys
	targets := Targets(m.deps.Form.Result())
	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Back):
		m.browsing = false
		return m, m.focusInput()
	case key.Matches(k, keys.Theme):
		m.toggleTheme()
	case key.Matches(k, keys.Down):
		if len(targets) > 0 {
			m.selected = (m.selected + 1) % len(targets)
		}
	case key.Matches(k, keys.Up):
		if len(targets) > 0 {
			m.selected = (m.selected - 1 + len(targets)) % len(targets)
		}
	case key.Matches(k, keys.Open):
		if m.selected >= 0 && m.selected < len(targets) {
			if err := m.openFocus(planform.SubjectFromTarget(targets[m.selected])); err != nil {
				m.err = err.Error()
			}
		}
	}
	return m, nil
}

func (m Model) viewPlan() string {
	p := ui.Current()
	var b strings.Builder

	header := p.Title.Render("Study planner")
	if m.account != "" {
		header += "  " + p.Muted.Render(m.account)
	}
	if icon := m.themeIcon(); icon != "" {
		header += "  " + icon
	}
	b.WriteString(header + "\n")
	b.WriteString(statusLine(m.deps.Form.Status()) + "\n\n")

	if alert := m.deps.Form.Alert(); alert != "" {
		b.WriteString(p.Error.Render("⚠ "+alert) + "\n\n")
	}
	if m.err != "" {
		b.WriteString(p.Error.Render(m.err) + "\n\n")
	}

	b.WriteString(p.Accent.Render("Subjects") + "\n")
	for i, r := range m.rows {
		b.WriteString(fmt.Sprintf("%s %s  %s h\n", m.marker(i*2), r.name.View(), r.hours.View()))
	}
	base := len(m.rows) * 2
	b.WriteString(fmt.Sprintf("\n%s Start     %s\n", m.marker(base), m.fields[0].View()))
	b.WriteString(fmt.Sprintf("%s End       %s\n", m.marker(base+1), m.fields[1].View()))
	b.WriteString(fmt.Sprintf("%s Hours/day %s\n\n", m.marker(base+2), m.fields[2].View()))

	sel := -1
	if m.browsing {
		sel = m.selected
	}
	if res := m.deps.Form.Result(); len(res.Cards) > 0 || res.Message != "" {
		b.WriteString(RenderResult(res, sel) + "\n\n")
	}

	if m.browsing {
		b.WriteString(m.help.View(defaultResultKeys))
	} else {
		b.WriteString(m.help.View(defaultPlanKeys))
	}
	return b.String()
}

func (m Model) marker(i int) string {
	if !m.browsing && i == m.cursor {
		return ui.Current().Accent.Render(">")
	}
	return " "
}

func statusLine(s planform.Status) string {
	p := ui.Current()
	switch s {
	case planform.StatusPlanning:
		return p.Pending.Render("● " + s.String())
	case planform.StatusReady:
		return p.Success.Render("● " + s.String())
	case planform.StatusOffline:
		return p.Error.Render("● " + s.String())
	default:
		return p.Muted.Render("● " + s.String())
	}
}
