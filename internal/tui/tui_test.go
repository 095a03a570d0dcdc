package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/focus"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/model"
	"github.com/idilsaglam/studyplan/internal/planform"
)

type fakeBackend struct {
	resp  model.PlanResponse
	err   error
	calls int
	last  model.PlanRequest
}

func (f *fakeBackend) Plan(_ context.Context, req model.PlanRequest) (model.PlanResponse, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func (f *fakeBackend) Me(context.Context) (model.User, error) {
	return model.User{}, errors.New("401")
}

var mathPlan = model.PlanResponse{Plan: []model.PlanDay{
	{Date: "2026-10-19", HoursPlanned: 2, Sessions: []model.Session{{Subject: "Math", Hours: 2}}},
	{Date: "2026-10-20", Type: model.DayBreak},
}}

func newTestModel(t *testing.T, b *fakeBackend, sched clock.Scheduler) Model {
	t.Helper()
	deps := Deps{
		Form:    planform.NewController(b, nil, logging.Discard()),
		Backend: b,
		NewFocus: func(subject string) (*focus.Controller, error) {
			return focus.NewController(sched, nil, nil, focus.Options{
				Subject: subject, WorkMinutes: 25, BreakMinutes: 5, Volume: 50,
			}, logging.Discard())
		},
		Log: logging.Discard(),
	}
	m, err := New(deps, "")
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestTargetsAndRender(t *testing.T) {
	res := planform.Render(mathPlan)
	targets := Targets(res)
	assert.Equal(t, []string{"/pomodoro.html?subject=Math", "/pomodoro.html?subject=Math"}, targets)

	out := RenderResult(res, 0)
	assert.Contains(t, out, "2 hours")
	assert.Contains(t, out, "Math 2h")
	assert.Contains(t, out, "Start focus session")
	assert.Contains(t, out, "Study day")
	assert.Contains(t, out, "Rest & recharge")
	assert.Contains(t, out, "You earned this break day")
	assert.NotContains(t, out, "Rest day.")

	assert.Contains(t, RenderResult(planform.Render(model.PlanResponse{}), -1), planform.EmptyPlanMessage)
}

func TestSubmitRendersCardsAndOpensFocus(t *testing.T) {
	b := &fakeBackend{resp: mathPlan}
	sched := clock.NewManual()
	m := newTestModel(t, b, sched)

	m, _ = press(t, m, runes("Math"), tab, runes("2"))
	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.Equal(t, planform.StatusPlanning, m.deps.Form.Status())

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, []model.Subject{{Name: "Math", Hours: 2}}, b.last.Subjects)
	assert.Equal(t, 2.0, b.last.HoursPerDay)
	assert.Equal(t, planform.StatusReady, m.deps.Form.Status())
	assert.True(t, m.browsing)
	assert.Contains(t, m.View(), "Math 2h")

	m, _ = press(t, m, enter)
	require.Equal(t, screenFocus, m.screen)
	assert.Equal(t, "Math", m.focus.State().Subject)
	assert.Contains(t, m.View(), "25:00")

	m, _ = press(t, m, runes("s"))
	sched.Advance(time.Second)
	assert.Equal(t, "24:59", m.focus.State().Display())

	m, _ = press(t, m, esc)
	assert.Equal(t, screenPlan, m.screen)
	assert.Nil(t, m.focus)
	assert.Zero(t, sched.Pending())
}

func TestSubmitWithoutSubjectsAlerts(t *testing.T) {
	b := &fakeBackend{resp: mathPlan}
	m := newTestModel(t, b, clock.NewManual())

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.Zero(t, b.calls)
	assert.Equal(t, planform.NoSubjectsAlert, m.deps.Form.Alert())
	assert.Equal(t, planform.StatusIdle, m.deps.Form.Status())
	assert.Contains(t, m.View(), planform.NoSubjectsAlert)
}

func TestSubmitOffline(t *testing.T) {
	b := &fakeBackend{err: errors.New("connection refused")}
	m := newTestModel(t, b, clock.NewManual())

	m, cmd := press(t, m, runes("Math"), tab, runes("1"), enter)
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.Equal(t, planform.StatusOffline, m.deps.Form.Status())
	assert.False(t, m.browsing)
	assert.Contains(t, m.View(), planform.OfflineMessage)
}

func TestRowsAddAndRemove(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, clock.NewManual())

	m, _ = press(t, m, runes("Math"), tea.KeyMsg{Type: tea.KeyCtrlN}, runes("Art"))
	require.Len(t, m.rows, 2)
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "Art", m.rows[1].name.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Math", m.rows[0].name.Value())
	assert.Equal(t, 0, m.cursor)

	// the last row stays
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Len(t, m.rows, 1)
}

func TestAccountLine(t *testing.T) {
	m := newTestModel(t, &fakeBackend{}, clock.NewManual())

	next, _ := m.Update(accountMsg{err: errors.New("401")})
	assert.Contains(t, next.(Model).View(), "Not signed in")

	next, _ = m.Update(accountMsg{user: model.User{Name: "Ada"}})
	assert.Contains(t, next.(Model).View(), "Signed in as Ada")
}

func TestFocusKeys(t *testing.T) {
	sched := clock.NewManual()
	b := &fakeBackend{}
	deps := Deps{
		Backend: b,
		NewFocus: func(subject string) (*focus.Controller, error) {
			return focus.NewController(sched, nil, nil, focus.Options{
				Subject: subject, WorkMinutes: 25, BreakMinutes: 5, Volume: 50,
			}, logging.Discard())
		},
		Log: logging.Discard(),
	}
	m, err := New(deps, "Physics")
	require.NoError(t, err)
	require.Equal(t, screenFocus, m.screen)

	m, _ = press(t, m, runes("W"))
	assert.Equal(t, 26*60, m.focus.State().Remaining)

	m, _ = press(t, m, runes("+"), runes("m"))
	st := m.focus.State()
	assert.Equal(t, 55, st.Volume)
	assert.Equal(t, "rain", string(st.Noise))

	m, _ = press(t, m, runes("n"))
	st = m.focus.State()
	assert.Equal(t, focus.Break, st.Kind)
	assert.Equal(t, 5*60, st.Remaining)
	assert.Contains(t, m.View(), "Next")

	m, _ = press(t, m, runes("b"), runes("b"), runes("b"), runes("b"), runes("b"))
	assert.NotEmpty(t, m.err)
	_, brk := m.focus.Minutes()
	assert.Equal(t, 1, brk)

	// no plan screen to return to
	_, cmd := press(t, m, esc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
