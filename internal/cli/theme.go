package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/ui"
)

func newThemeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|dark|light|show]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", "dark", "light", "show"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			switch action {
			case "show":
			case "toggle":
				_, err = app.Theme.Toggle()
			case "dark":
				err = app.Theme.Set(true)
			case "light":
				err = app.Theme.Set(false)
			default:
				return fmt.Errorf("%w: unknown theme action %q", apperrors.ErrInvalidInput, action)
			}
			if err != nil {
				return err
			}

			name := "light"
			if app.Theme.Dark() {
				name = "dark"
			}
			icon := app.Theme.Document().Icon(ui.Current())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", icon, ui.Current().Accent.Render("theme: "+name))
			return nil
		},
	}
}
