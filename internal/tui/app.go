// Package tui is the interactive terminal front end: the plan form and the
// focus session screen.
package tui

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/focus"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/model"
	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/theme"
	"github.com/idilsaglam/studyplan/internal/ui"
)

// Backend is the planner API as the TUI needs it (planner.Client).
type Backend interface {
	planform.Planner
	Me(ctx context.Context) (model.User, error)
}

// Deps wires the screens to their controllers.
type Deps struct {
	Form    *planform.Controller
	Backend Backend
	Theme   *theme.Controller
	Loop    *clock.Loop
	// NewFocus builds a focus controller for subject on Loop.
	NewFocus func(subject string) (*focus.Controller, error)
	Log      *slog.Logger
}

type screen int

const (
	screenPlan screen = iota
	screenFocus
)

type (
	callbackMsg func()
	planDoneMsg struct {
		req  model.PlanRequest
		resp model.PlanResponse
		err  error
	}
	accountMsg struct {
		user model.User
		err  error
	}
)

// Model is the root bubbletea model.
type Model struct {
	deps Deps
	log  *slog.Logger

	screen screen
	width  int
	help   help.Model
	err    string

	// plan screen
	fields   []textinput.Model // start, end, hours/day
	rows     []subjectRow
	cursor   int
	browsing bool
	selected int
	account  string

	// focus screen
	focus    *focus.Controller
	showHelp bool
}

type subjectRow struct {
	name, hours textinput.Model
}

// New builds the root model. A non-empty subject opens the focus screen first.
func New(deps Deps, subject string) (Model, error) {
	m := Model{
		deps:     deps,
		log:      logging.Component(deps.Log, "tui"),
		help:     help.New(),
		selected: -1,
		width:    terminalWidth(),
	}
	m.fields = []textinput.Model{
		newInput("start date (YYYY-MM-DD)", 14),
		newInput("end date (YYYY-MM-DD)", 14),
		newInput("2", 4),
	}
	m.rows = []subjectRow{newRow()}
	m.focusInput()

	if subject != "" || deps.Form == nil {
		if subject == "" {
			subject = planform.DefaultSubject
		}
		if err := m.openFocus(subject); err != nil {
			return m, err
		}
	}
	return m, nil
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(deps Deps, subject string) error {
	m, err := New(deps, subject)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(Model); ok {
		fm.closeFocus()
	}
	return err
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = width
	return ti
}

func newRow() subjectRow {
	return subjectRow{name: newInput("Subject", 18), hours: newInput("hours", 5)}
}

// terminalWidth seeds the layout before the first WindowSizeMsg arrives.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Loop != nil {
		cmds = append(cmds, waitCallback(m.deps.Loop.C()))
	}
	if m.deps.Backend != nil {
		cmds = append(cmds, fetchAccount(m.deps.Backend))
	}
	return tea.Batch(cmds...)
}

// waitCallback delivers the next scheduler callback to Update, so timer
// callbacks run on the same goroutine as key handling.
func waitCallback(ch <-chan func()) tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return nil
		}
		return callbackMsg(fn)
	}
}

func fetchAccount(b Backend) tea.Cmd {
	return func() tea.Msg {
		u, err := b.Me(context.Background())
		return accountMsg{user: u, err: err}
	}
}

func requestPlan(b planform.Planner, req model.PlanRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.Plan(context.Background(), req)
		return planDoneMsg{req: req, resp: resp, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case callbackMsg:
		msg()
		return m, waitCallback(m.deps.Loop.C())

	case accountMsg:
		if msg.err != nil {
			m.account = "Not signed in"
		} else {
			m.account = "Signed in as " + msg.user.Name
		}
		return m, nil

	case planDoneMsg:
		res, err := m.deps.Form.Finish(context.Background(), msg.req, msg.resp, msg.err)
		if err != nil {
			m.log.Warn("plan_failed", "error", err)
		}
		m.selected = -1
		if len(Targets(res)) > 0 && m.screen == screenPlan {
			m.selected = 0
			m.browsing = true
		}
		return m, m.focusInput()
	}

	if m.screen == screenFocus {
		return m.updateFocus(msg)
	}
	return m.updatePlan(msg)
}

func (m Model) View() string {
	if m.screen == screenFocus {
		return m.viewFocus()
	}
	return m.viewPlan()
}

func (m *Model) toggleTheme() {
	if m.deps.Theme == nil {
		return
	}
	if _, err := m.deps.Theme.Toggle(); err != nil {
		m.err = err.Error()
	}
}

func (m Model) themeIcon() string {
	if m.deps.Theme == nil {
		return ""
	}
	return m.deps.Theme.Document().Icon(ui.Current())
}
