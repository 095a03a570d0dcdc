package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/tui"
	"github.com/idilsaglam/studyplan/internal/ui"
)

func newPlanCmd(configPath *string) *cobra.Command {
	var (
		subjects    []string
		start, end  string
		hoursPerDay string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Request a study plan",
		Long: `Without --subject flags, opens the interactive plan form.
With them, requests the plan once and prints the day cards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(subjects) == 0 {
				return runPlanTUI(*configPath)
			}
			rows, err := parseSubjectFlags(subjects)
			if err != nil {
				return err
			}
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			form := planform.Form{Rows: rows, StartDate: start, EndDate: end, HoursPerDay: hoursPerDay}
			c := app.planForm()
			res, err := c.Submit(cmd.Context(), form)
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, apperrors.ErrNoSubjects):
				return errors.New(c.Alert())
			case errors.Is(err, apperrors.ErrOffline):
				fmt.Fprintln(out, tui.RenderResult(res, -1))
				return apperrors.ErrOffline
			case err != nil:
				return err
			}

			fmt.Fprintln(out, ui.Current().Title.Render("Study plan")+"  "+ui.Current().Muted.Render(c.Status().String()))
			fmt.Fprintln(out, tui.RenderResult(res, -1))
			for _, card := range res.Cards {
				if !card.Rest {
					fmt.Fprintln(out, ui.Current().Muted.Render("Tip: studyplan focus --subject "+planform.SubjectFromTarget(card.FocusURL)))
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&subjects, "subject", "s", nil, "subject as Name=hours (repeatable)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hoursPerDay, "hours-per-day", "", "study hours per day (default 2)")
	return cmd
}

// parseSubjectFlags splits Name=hours pairs. Rows the form would drop are
// kept so the same validation applies.
func parseSubjectFlags(values []string) ([]planform.Row, error) {
	rows := make([]planform.Row, 0, len(values))
	for _, v := range values {
		name, hours, found := strings.Cut(v, "=")
		if !found {
			return nil, fmt.Errorf("%w: subject %q is not Name=hours", apperrors.ErrInvalidInput, v)
		}
		rows = append(rows, planform.Row{Name: name, Hours: hours})
	}
	return rows, nil
}

func runPlanTUI(configPath string) error {
	app, err := loadApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	opts, err := app.focusOptions()
	if err != nil {
		return err
	}
	loop := clock.NewLoop()
	return tui.Run(tui.Deps{
		Form:     app.planForm(),
		Backend:  app.Client,
		Theme:    app.Theme,
		Loop:     loop,
		NewFocus: app.focusFactory(loop, opts),
		Log:      app.Log,
	}, "")
}
