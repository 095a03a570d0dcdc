package focus

import (
	"fmt"

	"github.com/idilsaglam/studyplan/internal/audio"
)

type Kind int

const (
	Work Kind = iota
	Break
)

func (k Kind) String() string {
	if k == Break {
		return "Break"
	}
	return "Work"
}

// Opposite is the session type a skip moves to.
func (k Kind) Opposite() Kind {
	if k == Work {
		return Break
	}
	return Work
}

// Event tells listeners why the state changed.
type Event int

const (
	EventChanged Event = iota
	EventWorkComplete
	EventBreakComplete
)

// State is a snapshot handed to listeners and renderers.
type State struct {
	Subject   string
	Kind      Kind
	Remaining int // seconds
	Total     int // seconds
	Running   bool
	Paused    bool
	// Pending is set while an automatic transition waits out its delay.
	Pending   bool
	Completed int
	// JustCompleted marks a finished work session until the next change.
	JustCompleted bool

	StartLabel string
	Noise      audio.Profile
	Volume     int
}

// Name is the state machine label, e.g. "Work.Running".
func (s State) Name() string {
	phase := "Idle"
	switch {
	case s.Running:
		phase = "Running"
	case s.Paused:
		phase = "Paused"
	}
	return s.Kind.String() + "." + phase
}

// Display is the mm:ss countdown.
func (s State) Display() string {
	return fmt.Sprintf("%02d:%02d", s.Remaining/60, s.Remaining%60)
}

// ElapsedLabel rounds elapsed time up to whole minutes.
func (s State) ElapsedLabel() string {
	elapsed := s.Total - s.Remaining
	minutes := (elapsed + 59) / 60
	if s.Kind == Work {
		return fmt.Sprintf("%d:00 elapsed • Work session", minutes)
	}
	return fmt.Sprintf("%d:00 elapsed • Break time", minutes)
}

// SkipLabel names the skip action for the current session type.
func (s State) SkipLabel() string {
	if s.Kind == Work {
		return "Skip"
	}
	return "Next"
}

const warningThreshold = 60

// Mood is the lighting derived from the timer phase and urgency.
type Mood struct {
	Focus    bool
	Break    bool
	Warning  bool
	Complete bool
}

func (s State) Mood() Mood {
	if s.Kind == Break {
		return Mood{Break: true, Complete: s.JustCompleted}
	}
	return Mood{
		Focus:    true,
		Warning:  s.Remaining < warningThreshold,
		Complete: s.JustCompleted,
	}
}

// Classes lists the mood as visual class names.
func (m Mood) Classes() []string {
	var out []string
	if m.Focus {
		out = append(out, "focus")
	}
	if m.Warning {
		out = append(out, "pulse-warning")
	}
	if m.Break {
		out = append(out, "break")
	}
	if m.Complete {
		out = append(out, "complete")
	}
	return out
}
