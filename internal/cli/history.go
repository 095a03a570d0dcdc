package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/studyplan/internal/ui"
)

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent plans and focus sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if app.History == nil {
				return fmt.Errorf("history database unavailable, see %s", app.Config.LogFile)
			}

			ctx := cmd.Context()
			plans, err := app.History.Plans(ctx, limit)
			if err != nil {
				return err
			}
			sessions, err := app.History.Sessions(ctx, limit)
			if err != nil {
				return err
			}
			totals, err := app.History.FocusTotals(ctx)
			if err != nil {
				return err
			}

			p := ui.Current()
			lines := []string{p.Title.Render("Plans")}
			if len(plans) == 0 {
				lines = append(lines, p.Muted.Render("(none)"))
			}
			for _, e := range plans {
				lines = append(lines, fmt.Sprintf("%s  %s → %s  %d subjects, %d days",
					p.Muted.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
					orDash(e.StartDate), orDash(e.EndDate), e.Subjects, e.Days))
			}

			lines = append(lines, "", p.Title.Render("Focus sessions"))
			if len(sessions) == 0 {
				lines = append(lines, p.Muted.Render("(none)"))
			}
			for _, s := range sessions {
				lines = append(lines, fmt.Sprintf("%s  %-5s %s  %d min",
					p.Muted.Render(s.CompletedAt.Local().Format("2006-01-02 15:04")),
					s.Kind, s.Subject, s.Seconds/60))
			}

			if len(totals) > 0 {
				lines = append(lines, "", p.Title.Render("Focused time"))
				subjects := make([]string, 0, len(totals))
				for s := range totals {
					subjects = append(subjects, s)
				}
				sort.Strings(subjects)
				for _, s := range subjects {
					lines = append(lines, fmt.Sprintf("%s  %s", p.Accent.Render(s), formatMinutes(totals[s])))
				}
			}
			panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "entries per section")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatMinutes(seconds int) string {
	m := seconds / 60
	if m >= 60 {
		return fmt.Sprintf("%dh%02dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}
