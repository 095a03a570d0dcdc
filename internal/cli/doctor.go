package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/studyplan/internal/notify"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func newDoctorCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the backend, local storage and desktop integrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			failed := 0

			if err := os.MkdirAll(app.Config.DataDir, 0o700); err != nil {
				fail(out, "data dir "+app.Config.DataDir+": "+err.Error())
				failed++
			} else {
				ok(out, "data dir "+app.Config.DataDir)
			}

			if app.History != nil {
				ok(out, "history database")
			} else {
				fail(out, "history database unavailable")
				failed++
			}

			if err := app.Client.Health(cmd.Context()); err != nil {
				fail(out, "planner API "+app.Config.APIURL+": "+err.Error())
				failed++
			} else {
				ok(out, "planner API "+app.Config.APIURL)
			}

			if u, err := app.Client.Me(cmd.Context()); err != nil {
				warn(out, "Not signed in")
			} else {
				ok(out, "Signed in as "+u.Name)
			}

			if _, err := lookPath("aplay"); err != nil {
				warn(out, "aplay not found, ambient noise stays silent")
			} else {
				ok(out, "audio output (aplay)")
			}

			d := notify.NewDesktop(app.Config.Path("icons"), app.Log)
			if d.RequestPermission() == notify.Granted {
				ok(out, "desktop notifications")
			} else {
				warn(out, "no desktop notifier found, notifications disabled")
			}

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
