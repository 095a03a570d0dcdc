// Package planform collects subjects, requests a plan and turns the answer
// into day cards.
package planform

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/model"
)

const (
	NoSubjectsAlert    = "Please add at least one subject."
	EmptyPlanMessage   = "Add subjects with hours to generate a plan."
	OfflineMessage     = "Unable to reach the planner API. Start the backend first."
	DefaultHoursPerDay = 2
	DefaultSubject     = "Study"
	RestTitle          = "Rest & recharge"
	RestSubtitle       = "You earned this break day"
	StudyBadge         = "Study day"
	focusPath          = "/pomodoro.html"
)

type Status int

const (
	StatusIdle Status = iota
	StatusPlanning
	StatusReady
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusPlanning:
		return "Planning..."
	case StatusReady:
		return "Plan ready"
	case StatusOffline:
		return "Offline"
	default:
		return "Ready"
	}
}

// Row is one subject row as typed by the user.
type Row struct {
	Name  string
	Hours string
}

type Form struct {
	Rows        []Row
	StartDate   string
	EndDate     string
	HoursPerDay string
}

// CollectSubjects keeps rows with a non-blank name and hours > 0.
func CollectSubjects(rows []Row) []model.Subject {
	subjects := make([]model.Subject, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		hours := parseHours(r.Hours)
		if name != "" && hours > 0 {
			subjects = append(subjects, model.Subject{Name: name, Hours: hours})
		}
	}
	return subjects
}

func parseHours(s string) float64 {
	h, ok := parseFinite(s)
	if !ok {
		return 0
	}
	return h
}

// parseFinite rejects "inf" and "NaN", which ParseFloat accepts but JSON
// cannot carry.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Request builds the API payload. Blank or unparseable hours-per-day means 2;
// an explicit 0 is sent as typed.
func (f Form) Request() model.PlanRequest {
	hpd, ok := parseFinite(f.HoursPerDay)
	if !ok {
		hpd = DefaultHoursPerDay
	}
	return model.PlanRequest{
		Subjects:    CollectSubjects(f.Rows),
		StartDate:   strings.TrimSpace(f.StartDate),
		EndDate:     strings.TrimSpace(f.EndDate),
		HoursPerDay: hpd,
	}
}

// Planner is the backend (planner.Client).
type Planner interface {
	Plan(ctx context.Context, req model.PlanRequest) (model.PlanResponse, error)
}

// Recorder keeps successful plans (history.Store). Optional.
type Recorder interface {
	SavePlan(ctx context.Context, req model.PlanRequest, resp model.PlanResponse) error
}

// Controller owns the status indicator and the rendered result.
type Controller struct {
	planner  Planner
	recorder Recorder
	log      *slog.Logger

	status Status
	alert  string
	result Result
}

func NewController(p Planner, rec Recorder, log *slog.Logger) *Controller {
	return &Controller{planner: p, recorder: rec, log: logging.Component(log, "planform")}
}

func (c *Controller) Status() Status { return c.status }

// Alert is the last blocking validation message, cleared on each submit.
func (c *Controller) Alert() string { return c.alert }

func (c *Controller) Result() Result { return c.result }

// Submit validates the form, asks for a plan and renders it. Validation
// failures return apperrors.ErrNoSubjects without any request; API failures
// render the offline message and return apperrors.ErrOffline.
func (c *Controller) Submit(ctx context.Context, f Form) (Result, error) {
	req, err := c.Begin(f)
	if err != nil {
		return c.result, err
	}
	resp, err := c.planner.Plan(ctx, req)
	return c.Finish(ctx, req, resp, err)
}

// Begin validates f and moves the status to Planning. Callers that run the
// request elsewhere (the TUI) pass its outcome to Finish.
func (c *Controller) Begin(f Form) (model.PlanRequest, error) {
	c.alert = ""
	c.status = StatusPlanning

	req := f.Request()
	if len(req.Subjects) == 0 {
		c.alert = NoSubjectsAlert
		c.status = StatusIdle
		return req, apperrors.ErrNoSubjects
	}
	c.log.Info("plan_requested", "subjects", len(req.Subjects), "start", req.StartDate, "end", req.EndDate)
	return req, nil
}

// Finish renders the outcome of a plan request.
func (c *Controller) Finish(ctx context.Context, req model.PlanRequest, resp model.PlanResponse, err error) (Result, error) {
	if err != nil {
		c.result = Result{Message: OfflineMessage, Offline: true}
		c.status = StatusOffline
		if !errors.Is(err, apperrors.ErrOffline) {
			err = errors.Join(apperrors.ErrOffline, err)
		}
		return c.result, err
	}

	c.result = Render(resp)
	c.status = StatusReady
	if c.recorder != nil {
		if err := c.recorder.SavePlan(ctx, req, resp); err != nil {
			c.log.Warn("plan_history_failed", "error", err)
		}
	}
	return c.result, nil
}

// Result is what the plan area shows: either a message or cards.
type Result struct {
	Message string
	Offline bool
	Cards   []Card
}

type Card struct {
	Date string
	Rest bool

	// Rest days only
	RestTitle    string
	RestSubtitle string

	// Study days only
	Badge      string
	Hours      string
	Pills      []Pill
	FocusLabel string
	FocusURL   string
}

type Pill struct {
	Label  string
	Target string
}

func Render(resp model.PlanResponse) Result {
	if len(resp.Plan) == 0 {
		return Result{Message: EmptyPlanMessage}
	}
	cards := make([]Card, 0, len(resp.Plan))
	for _, day := range resp.Plan {
		if day.IsRest() {
			cards = append(cards, Card{Date: day.Date, Rest: true, RestTitle: RestTitle, RestSubtitle: RestSubtitle})
			continue
		}
		card := Card{
			Date:       day.Date,
			Badge:      StudyBadge,
			Hours:      formatHours(day.HoursPlanned) + " hours",
			FocusLabel: "Start focus session",
		}
		for _, s := range day.Sessions {
			card.Pills = append(card.Pills, Pill{
				Label:  s.Subject + " " + formatHours(s.Hours) + "h",
				Target: FocusTarget(s.Subject),
			})
		}
		first := DefaultSubject
		if len(day.Sessions) > 0 && day.Sessions[0].Subject != "" {
			first = day.Sessions[0].Subject
		}
		card.FocusURL = FocusTarget(first)
		cards = append(cards, card)
	}
	return Result{Cards: cards}
}

// formatHours prints the shortest decimal form: 2 -> "2", 1.5 -> "1.5".
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FocusTarget is the navigation target that opens a focus session.
func FocusTarget(subject string) string {
	return focusPath + "?subject=" + encodeURIComponent(subject)
}

// SubjectFromTarget recovers the subject from a focus target.
func SubjectFromTarget(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return DefaultSubject
	}
	if s := u.Query().Get("subject"); s != "" {
		return s
	}
	return DefaultSubject
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	var b strings.Builder
	const hex = "0123456789ABCDEF"
	for _, c := range []byte(s) {
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
