package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/studyplan/internal/ui"
)

const volumeStep = 5

// openFocus tears down any previous session before building the new one.
func (m *Model) openFocus(subject string) error {
	if m.deps.NewFocus == nil {
		return nil
	}
	m.closeFocus()
	fc, err := m.deps.NewFocus(subject)
	if err != nil {
		return err
	}
	fc.RequestPermission()
	m.focus = fc
	m.screen = screenFocus
	m.err = ""
	m.log.Info("focus_opened", "subject", subject)
	return nil
}

func (m *Model) closeFocus() {
	if m.focus != nil {
		m.focus.Close()
		m.focus = nil
	}
}

func (m Model) updateFocus(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.focus == nil {
		return m, nil
	}
	keys := defaultFocusKeys
	fc := m.focus
	st := fc.State()
	work, brk := fc.Minutes()
	m.err = ""

	switch {
	case key.Matches(k, keys.Quit):
		m.closeFocus()
		return m, tea.Quit
	case key.Matches(k, keys.Back):
		m.closeFocus()
		if m.deps.Form == nil {
			return m, tea.Quit
		}
		m.screen = screenPlan
		return m, m.focusInput()
	case key.Matches(k, keys.Start):
		fc.Start()
	case key.Matches(k, keys.Pause):
		fc.Pause()
	case key.Matches(k, keys.Skip):
		fc.Skip()
	case key.Matches(k, keys.Noise):
		fc.SetNoise(st.Noise.Next())
	case key.Matches(k, keys.VolUp):
		fc.SetVolume(st.Volume + volumeStep)
	case key.Matches(k, keys.VolDown):
		fc.SetVolume(st.Volume - volumeStep)
	case key.Matches(k, keys.WorkUp):
		m.setErr(fc.SetWorkMinutes(work + 1))
	case key.Matches(k, keys.WorkDown):
		m.setErr(fc.SetWorkMinutes(work - 1))
	case key.Matches(k, keys.BreakUp):
		m.setErr(fc.SetBreakMinutes(brk + 1))
	case key.Matches(k, keys.BreakDown):
		m.setErr(fc.SetBreakMinutes(brk - 1))
	case key.Matches(k, keys.Theme):
		m.toggleTheme()
	case k.String() == "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err.Error()
	}
}

func (m Model) viewFocus() string {
	if m.focus == nil {
		return ""
	}
	p := ui.Current()
	work, brk := m.focus.Minutes()

	var b strings.Builder
	header := p.Title.Render("Focus")
	if icon := m.themeIcon(); icon != "" {
		header += "  " + icon
	}
	b.WriteString(header + "\n\n")
	b.WriteString(RenderFocus(m.focus.State(), work, brk) + "\n")
	if m.err != "" {
		b.WriteString(p.Error.Render(m.err) + "\n")
	}
	b.WriteString("\n")
	h := m.help
	h.ShowAll = m.showHelp
	b.WriteString(h.View(defaultFocusKeys))
	return b.String()
}
