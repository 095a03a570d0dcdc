// Package cli wires the studyplan commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Run executes the command line and returns an exit code (0 ok, 1 error).
func Run(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fail(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "studyplan",
		Short: "Plan study days and run focus sessions",
		Long: `studyplan asks the planner service for a day-by-day study schedule and
runs Pomodoro focus sessions with ambient noise.

Examples:
  studyplan                                 # interactive plan form
  studyplan plan -s Math=4 -s Physics=2 --start 2026-10-19 --end 2026-10-23
  studyplan focus --subject Math
  studyplan theme toggle
  studyplan auth login --email ada@example.com`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlanTUI(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.studyplan/config.yaml)")

	root.AddCommand(
		newPlanCmd(&configPath),
		newFocusCmd(&configPath),
		newThemeCmd(&configPath),
		newAuthCmd(&configPath),
		newHistoryCmd(&configPath),
		newDoctorCmd(&configPath),
	)
	return root
}
