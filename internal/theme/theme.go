// Package theme resolves and persists the dark-mode preference.
package theme

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/studyplan/internal/logging"
	"github.com/idilsaglam/studyplan/internal/ui"
)

const (
	PrefKey   = "darkMode"
	DarkClass = "dark-mode"
	hidden    = "hidden"
)

// Prefs is the persisted key/value storage (jsonstore.Store).
type Prefs interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Document holds the visual state the preference drives.
type Document struct {
	Root     *ui.ClassList
	Body     *ui.ClassList
	SunIcon  *ui.ClassList
	MoonIcon *ui.ClassList
}

func NewDocument() *Document {
	return &Document{
		Root:     ui.NewClassList(),
		Body:     ui.NewClassList(),
		SunIcon:  ui.NewClassList(),
		MoonIcon: ui.NewClassList(),
	}
}

// Icon returns the visible icon for the current state.
func (d *Document) Icon(p ui.Palette) string {
	if d.MoonIcon.Contains(hidden) {
		return p.Sun
	}
	return p.Moon
}

type Controller struct {
	prefs      Prefs
	doc        *Document
	systemDark func() bool
	log        *slog.Logger
}

// SystemDark reports the terminal background as the OS-level preference.
func SystemDark() bool { return lipgloss.HasDarkBackground() }

func New(prefs Prefs, doc *Document, systemDark func() bool, log *slog.Logger) *Controller {
	if doc == nil {
		doc = NewDocument()
	}
	if systemDark == nil {
		systemDark = func() bool { return false }
	}
	return &Controller{prefs: prefs, doc: doc, systemDark: systemDark, log: logging.Component(log, "theme")}
}

func (c *Controller) Document() *Document { return c.doc }

func (c *Controller) Dark() bool { return c.doc.Root.Contains(DarkClass) }

// Init applies the stored preference, or the system one when none is stored.
func (c *Controller) Init() error {
	v, ok, err := c.prefs.Get(PrefKey)
	if err != nil {
		return fmt.Errorf("read theme preference: %w", err)
	}
	dark := v == "true"
	if !ok {
		dark = c.systemDark()
	}
	return c.Set(dark)
}

// Set applies dark and persists it.
func (c *Controller) Set(dark bool) error {
	c.doc.Root.Toggle(DarkClass, dark)
	c.doc.Body.Toggle(DarkClass, dark)
	c.doc.SunIcon.Toggle(hidden, dark)
	c.doc.MoonIcon.Toggle(hidden, !dark)
	ui.SetDark(dark)

	value := "false"
	if dark {
		value = "true"
	}
	if err := c.prefs.Set(PrefKey, value); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	c.log.Debug("theme_applied", "dark", dark)
	return nil
}

// Toggle flips the current state and returns the new one.
func (c *Controller) Toggle() (bool, error) {
	dark := !c.Dark()
	return dark, c.Set(dark)
}
