package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/studyplan/internal/focus"
	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/ui"
)

// Targets lists every navigable element of a result in display order:
// each study card's pills, then its focus button.
func Targets(res planform.Result) []string {
	var out []string
	for _, c := range res.Cards {
		if c.Rest {
			continue
		}
		for _, p := range c.Pills {
			out = append(out, p.Target)
		}
		out = append(out, c.FocusURL)
	}
	return out
}

// RenderResult draws the plan area. selected indexes Targets(res); -1 for none.
func RenderResult(res planform.Result, selected int) string {
	p := ui.Current()
	if len(res.Cards) == 0 {
		if res.Offline {
			return p.Error.Render(res.Message)
		}
		return p.Muted.Render(res.Message)
	}

	cards := make([]string, 0, len(res.Cards))
	idx := 0
	for _, c := range res.Cards {
		if c.Rest {
			cards = append(cards, p.RestCard.Render(strings.Join([]string{
				p.Muted.Render(c.Date),
				p.Title.Render(c.RestTitle),
				c.RestSubtitle,
			}, "\n")))
			continue
		}
		var pills []string
		for _, pl := range c.Pills {
			pills = append(pills, highlight(p.Pill, idx == selected).Render(pl.Label))
			idx++
		}
		button := highlight(p.Button, idx == selected).Render("▶ " + c.FocusLabel)
		idx++

		body := []string{
			p.Title.Render(c.Date) + "  " + p.Accent.Render(c.Hours) + "  " + p.Badge.Render(c.Badge),
			strings.Join(pills, " "),
			button,
		}
		cards = append(cards, p.Card.Render(strings.Join(body, "\n")))
	}
	return strings.Join(cards, "\n")
}

func highlight(s lipgloss.Style, on bool) lipgloss.Style {
	if on {
		return s.Reverse(true)
	}
	return s
}

// moodStyle picks the timer colour from the mood flags, most urgent first.
func moodStyle(m focus.Mood, p ui.Palette) lipgloss.Style {
	switch {
	case m.Complete:
		return p.Complete
	case m.Warning:
		return p.Warning
	case m.Break:
		return p.Break
	default:
		return p.Focus
	}
}

// RenderFocus draws the timer card for s.
func RenderFocus(s focus.State, workMinutes, breakMinutes int) string {
	p := ui.Current()
	style := moodStyle(s.Mood(), p)

	header := p.Title.Render(s.Subject) + "  " + p.Badge.Render(s.Kind.String())
	if s.JustCompleted {
		header += "  " + p.Complete.Render("✓ complete")
	}
	lines := []string{
		header,
		"",
		style.Render(s.Display()),
		p.Muted.Render(s.ElapsedLabel()),
		ui.ProgressBar(s.Total-s.Remaining, s.Total, 28),
		"",
		fmt.Sprintf("%s  %s  %s",
			p.Button.Render(startLabel(s)),
			p.Pill.Render("Pause"),
			p.Pill.Render(s.SkipLabel()),
		),
		"",
		p.Muted.Render(fmt.Sprintf("Work %d min • Break %d min • Sessions %d", workMinutes, breakMinutes, s.Completed)),
		p.Muted.Render(fmt.Sprintf("Noise %s • Volume %d%%", s.Noise, s.Volume)),
	}
	return p.Card.Render(strings.Join(lines, "\n"))
}

func startLabel(s focus.State) string {
	if s.Running {
		return "Running"
	}
	return s.StartLabel
}
