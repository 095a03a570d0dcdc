// Package focus runs the Pomodoro session state machine. All timing goes
// through a clock.Scheduler and all side effects through small interfaces,
// so the controller has no ambient globals and runs under simulated time.
package focus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/idilsaglam/studyplan/internal/apperrors"
	"github.com/idilsaglam/studyplan/internal/audio"
	"github.com/idilsaglam/studyplan/internal/clock"
	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/notify"
)

const (
	TickInterval        = time.Second
	AutoTransitionDelay = 2 * time.Second

	LabelStart  = "Start session"
	LabelResume = "Resume"

	completeIcon = "data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='75' font-size='75'>✓</text></svg>"
)

// Audio is the ambient noise engine (audio.Player).
type Audio interface {
	Play(p audio.Profile, volume float64) error
	SetVolume(volume float64)
	Stop()
}

type Listener func(State, Event)

type Options struct {
	Subject       string
	WorkMinutes   int
	BreakMinutes  int
	Noise         audio.Profile
	Volume        int
	Notifications bool
}

// Controller owns the tick handle, the pending transition handle and the
// audio graph. Every method must be called from the scheduler's goroutine.
type Controller struct {
	sched    clock.Scheduler
	audio    Audio
	notifier notify.Notifier
	log      *slog.Logger

	// dispatch runs notifier calls off the scheduler goroutine.
	dispatch func(func())

	subject       string
	workMinutes   int
	breakMinutes  int
	noise         audio.Profile
	volume        int
	notifications bool

	kind          Kind
	remaining     int
	total         int
	running       bool
	paused        bool
	completed     int
	justCompleted bool
	startLabel    string

	tick      clock.Handle
	pending   clock.Handle
	pendingFn func()

	listeners []Listener
}

func NewController(sched clock.Scheduler, a Audio, n notify.Notifier, opts Options, log *slog.Logger) (*Controller, error) {
	if opts.WorkMinutes <= 0 || opts.BreakMinutes <= 0 {
		return nil, apperrors.ErrInvalidDuration
	}
	if opts.Subject == "" {
		opts.Subject = "Study"
	}
	if opts.Noise == "" {
		opts.Noise = audio.None
	}
	c := &Controller{
		sched:         sched,
		audio:         a,
		notifier:      n,
		dispatch:      func(fn func()) { go fn() },
		log:           logging.Component(log, "focus"),
		subject:       opts.Subject,
		workMinutes:   opts.WorkMinutes,
		breakMinutes:  opts.BreakMinutes,
		noise:         opts.Noise,
		volume:        clampVolume(opts.Volume),
		notifications: opts.Notifications,
		kind:          Work,
		startLabel:    LabelStart,
	}
	c.reset(opts.WorkMinutes)
	return c, nil
}

// RequestPermission asks for notification permission when still undecided.
func (c *Controller) RequestPermission() {
	if c.notifier != nil && c.notifier.Permission() == notify.Default {
		perm := c.notifier.RequestPermission()
		c.log.Info("notification_permission", "state", string(perm))
	}
}

func (c *Controller) OnChange(fn Listener) { c.listeners = append(c.listeners, fn) }

func (c *Controller) State() State {
	return State{
		Subject:       c.subject,
		Kind:          c.kind,
		Remaining:     c.remaining,
		Total:         c.total,
		Running:       c.running,
		Paused:        c.paused,
		Pending:       c.pending != nil,
		Completed:     c.completed,
		JustCompleted: c.justCompleted,
		StartLabel:    c.startLabel,
		Noise:         c.noise,
		Volume:        c.volume,
	}
}

// Start begins or resumes the countdown. No-op while running. When an
// automatic transition is waiting, it is applied first.
func (c *Controller) Start() {
	if c.running {
		return
	}
	if c.pending != nil {
		c.runPending()
		if c.running {
			return
		}
	}
	c.running = true
	c.paused = false
	c.justCompleted = false
	c.stopTick()
	c.tick = c.sched.Every(TickInterval, c.onTick)
	c.playNoise()
	c.log.Debug("session_started", "kind", c.kind.String(), "remaining", c.remaining)
	c.emit(EventChanged)
}

// Pause stops the countdown and the noise. Safe in any state.
func (c *Controller) Pause() {
	wasRunning := c.running
	c.running = false
	c.stopTick()
	c.stopAudio()
	if wasRunning {
		c.paused = true
		c.startLabel = LabelResume
	}
	c.emit(EventChanged)
}

// Skip moves to the idle state of the other session type with that type's
// configured duration. Safe in any state.
func (c *Controller) Skip() {
	c.stopTick()
	c.stopAudio()
	c.cancelPending()
	c.running = false
	c.paused = false
	c.justCompleted = false
	c.kind = c.kind.Opposite()
	c.reset(c.minutesFor(c.kind))
	c.startLabel = LabelStart
	c.log.Debug("session_skipped", "to", c.kind.String())
	c.emit(EventChanged)
}

// SetWorkMinutes records the work duration input. It applies now only when
// the timer is stopped on a work session.
func (c *Controller) SetWorkMinutes(m int) error {
	return c.setMinutes(Work, m)
}

// SetBreakMinutes is SetWorkMinutes for breaks.
func (c *Controller) SetBreakMinutes(m int) error {
	return c.setMinutes(Break, m)
}

func (c *Controller) setMinutes(k Kind, m int) error {
	if m <= 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrInvalidDuration, m)
	}
	if k == Work {
		c.workMinutes = m
	} else {
		c.breakMinutes = m
	}
	if !c.running && c.kind == k {
		c.reset(m)
		c.emit(EventChanged)
	}
	return nil
}

func (c *Controller) Minutes() (work, brk int) { return c.workMinutes, c.breakMinutes }

// SetNoise switches the ambient profile, rebuilding the audio while running.
func (c *Controller) SetNoise(p audio.Profile) {
	c.noise = p
	if c.running {
		c.playNoise()
	}
	c.emit(EventChanged)
}

// SetVolume retunes the live audio graph and the volume used by later starts.
func (c *Controller) SetVolume(v int) {
	c.volume = clampVolume(v)
	if c.audio != nil {
		c.audio.SetVolume(float64(c.volume) / 100)
	}
	c.emit(EventChanged)
}

func (c *Controller) SetNotifications(on bool) { c.notifications = on }

// Close releases the tick, the pending transition and the audio.
func (c *Controller) Close() {
	c.stopTick()
	c.cancelPending()
	c.stopAudio()
	c.running = false
}

func (c *Controller) onTick() {
	if !c.running {
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	c.emit(EventChanged)
	if c.remaining == 0 {
		c.complete()
	}
}

func (c *Controller) complete() {
	c.running = false
	c.paused = false
	c.stopTick()
	c.stopAudio()

	if c.kind == Work {
		c.completed++
		c.justCompleted = true
		c.log.Info("session_complete", "subject", c.subject, "completed", c.completed)
		c.send(notify.Notification{
			Title: "Session complete! 🎉",
			Body:  fmt.Sprintf("Great work on %s! Take a break.", c.subject),
			Icon:  completeIcon,
		})
		c.schedule(func() {
			c.kind = Break
			c.reset(c.breakMinutes)
			c.Start()
		})
		c.emit(EventWorkComplete)
		return
	}

	c.log.Info("break_over", "subject", c.subject)
	c.send(notify.Notification{
		Title: "Break over! 💪",
		Body:  "Ready for another work session?",
	})
	c.schedule(func() {
		c.kind = Work
		c.justCompleted = false
		c.reset(c.workMinutes)
		c.emit(EventChanged)
	})
	c.emit(EventBreakComplete)
}

func (c *Controller) schedule(next func()) {
	c.cancelPending()
	c.pendingFn = next
	c.pending = c.sched.After(AutoTransitionDelay, c.runPending)
}

func (c *Controller) runPending() {
	fn := c.pendingFn
	c.cancelPending()
	if fn != nil {
		fn()
	}
}

func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = nil
	c.pendingFn = nil
}

func (c *Controller) stopTick() {
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
}

func (c *Controller) playNoise() {
	if c.audio == nil {
		return
	}
	if err := c.audio.Play(c.noise, float64(c.volume)/100); err != nil {
		c.log.Warn("noise_unavailable", "profile", string(c.noise), "error", err)
	}
}

func (c *Controller) stopAudio() {
	if c.audio != nil {
		c.audio.Stop()
	}
}

func (c *Controller) send(n notify.Notification) {
	if !c.notifications || c.notifier == nil || c.notifier.Permission() != notify.Granted {
		return
	}
	notifier, log := c.notifier, c.log
	c.dispatch(func() {
		if err := notifier.Notify(n); err != nil {
			log.Warn("notify_failed", "error", err)
		}
	})
}

func (c *Controller) reset(minutes int) {
	c.remaining = minutes * 60
	c.total = c.remaining
}

func (c *Controller) minutesFor(k Kind) int {
	if k == Work {
		return c.workMinutes
	}
	return c.breakMinutes
}

func (c *Controller) emit(ev Event) {
	s := c.State()
	for _, fn := range c.listeners {
		fn(s, ev)
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
