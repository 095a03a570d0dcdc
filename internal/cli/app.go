package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/studyplan/internal/audio"
	"github.com/idilsaglam/studyplan/internal/auth"
	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/config"
	"github.com/idilsaglam/studyplan/internal/focus"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/notify"
	"github.com/idilsaglam/studyplan/internal/planform"
	"github.com/idilsaglam/studyplan/internal/planner"
	"github.com/idilsaglam/studyplan/internal/store/history"
	"github.com/idilsaglam/studyplan/internal/store/jsonstore"
	"github.com/idilsaglam/studyplan/internal/theme"
)

// App holds everything a command needs, built once per invocation.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Prefs   *jsonstore.Store
	Theme   *theme.Controller
	Creds   *auth.Store
	Client  *planner.Client
	History *history.Store

	closeLog func() error
}

func loadApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.Open(cfg.LogFile, slog.LevelInfo)
	if err != nil {
		// logging is best effort
		log, closeLog = logging.Discard(), func() error { return nil }
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Prefs:    jsonstore.New(cfg.Path("prefs.json")),
		Creds:    auth.NewStore(cfg.DataDir),
		closeLog: closeLog,
	}
	a.Client = planner.New(cfg.APIURL,
		planner.WithSession(a.Creds.Session()),
		planner.WithLogger(log),
	)
	a.Theme = theme.New(a.Prefs, theme.NewDocument(), theme.SystemDark, log)
	if err := a.Theme.Init(); err != nil {
		log.Warn("theme_init_failed", "error", err)
	}

	h, err := history.Open(cfg.Path("history.db"))
	if err != nil {
		log.Warn("history_unavailable", "error", err)
	} else {
		a.History = h
	}
	return a, nil
}

func (a *App) Close() {
	if a.History != nil {
		_ = a.History.Close()
	}
	_ = a.closeLog()
}

// recorder keeps a nil *history.Store from becoming a non-nil interface.
func (a *App) recorder() planform.Recorder {
	if a.History == nil {
		return nil
	}
	return a.History
}

func (a *App) planForm() *planform.Controller {
	return planform.NewController(a.Client, a.recorder(), a.Log)
}

// focusFactory builds focus controllers that share one audio player and one
// notifier, and record finished sessions in history.
func (a *App) focusFactory(sched clock.Scheduler, opts focus.Options) func(subject string) (*focus.Controller, error) {
	player := audio.NewPlayer(audio.DefaultSink(), a.Log)
	notifier := notify.NewDesktop(a.Config.Path("icons"), a.Log)

	return func(subject string) (*focus.Controller, error) {
		o := opts
		o.Subject = subject
		fc, err := focus.NewController(sched, player, notifier, o, a.Log)
		if err != nil {
			return nil, err
		}
		fc.OnChange(func(s focus.State, ev focus.Event) {
			if a.History == nil {
				return
			}
			var kind string
			switch ev {
			case focus.EventWorkComplete:
				kind = "work"
			case focus.EventBreakComplete:
				kind = "break"
			default:
				return
			}
			if err := a.History.RecordSession(context.Background(), s.Subject, kind, s.Total); err != nil {
				a.Log.Warn("session_history_failed", "error", err)
			}
		})
		return fc, nil
	}
}

// focusOptions resolves the configured focus defaults.
func (a *App) focusOptions() (focus.Options, error) {
	noise, err := audio.ParseProfile(a.Config.Noise)
	if err != nil {
		return focus.Options{}, fmt.Errorf("config noise: %w", err)
	}
	return focus.Options{
		WorkMinutes:   a.Config.WorkMinutes,
		BreakMinutes:  a.Config.BreakMinutes,
		Noise:         noise,
		Volume:        a.Config.Volume,
		Notifications: a.Config.Notifications,
	}, nil
}
