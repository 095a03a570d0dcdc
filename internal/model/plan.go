package model

// Subject is one row of the plan form: what to study and for how long.
type Subject struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// PlanRequest is the body sent to the planning API.
type PlanRequest struct {
	Subjects    []Subject `json:"subjects"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	HoursPerDay float64   `json:"hoursPerDay"`
}

const (
	DayStudy = "study"
	DayBreak = "break"
)

// Session is a subject/hours pairing inside a study day.
type Session struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

// PlanDay is one schedule entry returned by the API. Never mutated locally.
type PlanDay struct {
	Date         string    `json:"date"`
	Type         string    `json:"type,omitempty"`
	HoursPlanned float64   `json:"hoursPlanned"`
	Sessions     []Session `json:"sessions"`
}

// IsRest reports whether the day should render as a rest day.
// A zero-hour day counts as rest even when sessions are populated.
func (d PlanDay) IsRest() bool {
	return d.Type == DayBreak || d.HoursPlanned == 0
}

type PlanMeta struct {
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	HoursPerDay float64 `json:"hoursPerDay"`
}

type PlanResponse struct {
	Plan []PlanDay `json:"plan"`
	Meta *PlanMeta `json:"meta,omitempty"`
}

// User is the signed-in account as reported by /api/me.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
