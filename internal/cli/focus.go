package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/studyplan/internal/audio"
	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/tui"
)

func newFocusCmd(configPath *string) *cobra.Command {
	var (
		subject     string
		work, brk   int
		noise       string
		volume      int
		quietNotify bool
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a Pomodoro focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			opts, err := app.focusOptions()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("work") {
				opts.WorkMinutes = work
			}
			if flags.Changed("break") {
				opts.BreakMinutes = brk
			}
			if flags.Changed("noise") {
				p, err := audio.ParseProfile(noise)
				if err != nil {
					return err
				}
				opts.Noise = p
			}
			if flags.Changed("volume") {
				opts.Volume = volume
			}
			if quietNotify {
				opts.Notifications = false
			}

			loop := clock.NewLoop()
			newFocus := app.focusFactory(loop, opts)
			// fail before taking over the terminal
			probe, err := newFocus(subject)
			if err != nil {
				return err
			}
			probe.Close()

			return tui.Run(tui.Deps{
				Backend:  app.Client,
				Theme:    app.Theme,
				Loop:     loop,
				NewFocus: newFocus,
				Log:      app.Log,
			}, subject)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", planform.DefaultSubject, "subject to focus on")
	cmd.Flags().IntVar(&work, "work", 0, "work minutes (default from config)")
	cmd.Flags().IntVar(&brk, "break", 0, "break minutes (default from config)")
	cmd.Flags().StringVar(&noise, "noise", "", "ambient noise: rain|forest|ocean|coffee|none")
	cmd.Flags().IntVar(&volume, "volume", 0, "noise volume 0-100")
	cmd.Flags().BoolVar(&quietNotify, "no-notify", false, "disable desktop notifications")
	return cmd
}
