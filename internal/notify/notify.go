// Package notify shows desktop notifications through the platform's command
// line notifier.
package notify

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/idilsaglam/studyplan/internal/logging"
)

type Permission string

const (
	Default Permission = "default"
	Granted Permission = "granted"
	Denied  Permission = "denied"
)

type Notification struct {
	Title string
	Body  string
	// Icon is a file path or a data:image/svg+xml URI.
	Icon string
}

type Notifier interface {
	Permission() Permission
	RequestPermission() Permission
	Notify(n Notification) error
}

// Desktop uses notify-send on Linux and osascript on macOS. Permission is
// granted once the tool is found.
type Desktop struct {
	mu      sync.Mutex
	perm    Permission
	tool    string
	iconDir string
	log     *slog.Logger
	run     func(name string, args ...string) error
	look    func(name string) (string, error)
}

func NewDesktop(iconDir string, log *slog.Logger) *Desktop {
	return &Desktop{
		perm:    Default,
		iconDir: iconDir,
		log:     logging.Component(log, "notify"),
		run:     func(name string, args ...string) error { return exec.Command(name, args...).Run() },
		look:    exec.LookPath,
	}
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.perm
}

func (d *Desktop) RequestPermission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.perm != Default {
		return d.perm
	}
	name := "notify-send"
	if runtime.GOOS == "darwin" {
		name = "osascript"
	}
	path, err := d.look(name)
	if err != nil {
		d.perm = Denied
		d.log.Info("notifications_unavailable", "tool", name)
		return d.perm
	}
	d.tool = path
	d.perm = Granted
	return d.perm
}

func (d *Desktop) Notify(n Notification) error {
	d.mu.Lock()
	perm, tool := d.perm, d.tool
	d.mu.Unlock()
	if perm != Granted {
		return nil
	}
	if filepath.Base(tool) == "osascript" {
		script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
		return d.run(tool, "-e", script)
	}
	args := []string{"--app-name=studyplan"}
	if icon := d.iconPath(n.Icon); icon != "" {
		args = append(args, "--icon="+icon)
	}
	args = append(args, n.Title, n.Body)
	if err := d.run(tool, args...); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

const svgPrefix = "data:image/svg+xml,"

// iconPath materializes inline SVG icons as files for notifiers that need one.
func (d *Desktop) iconPath(icon string) string {
	if !strings.HasPrefix(icon, svgPrefix) {
		return icon
	}
	svg, err := url.PathUnescape(strings.TrimPrefix(icon, svgPrefix))
	if err != nil || d.iconDir == "" {
		return ""
	}
	p := filepath.Join(d.iconDir, fmt.Sprintf("icon-%x.svg", fnv32(svg)))
	if _, err := os.Stat(p); err == nil {
		return p
	}
	if err := os.MkdirAll(d.iconDir, 0o755); err != nil {
		return ""
	}
	if err := os.WriteFile(p, []byte(svg), 0o644); err != nil {
		d.log.Debug("icon_write_failed", "error", err)
		return ""
	}
	return p
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
