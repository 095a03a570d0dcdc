package notify

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func newTestDesktop(t *testing.T, found bool) (*Desktop, *[]call) {
	t.Helper()
	var calls []call
	d := NewDesktop(t.TempDir(), nil)
	d.look = func(name string) (string, error) {
		if !found {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}
	d.run = func(name string, args ...string) error {
		calls = append(calls, call{name, args})
		return nil
	}
	return d, &calls
}

func TestNotifyBeforePermissionIsSilent(t *testing.T) {
	d, calls := newTestDesktop(t, true)

	require.NoError(t, d.Notify(Notification{Title: "x"}))
	assert.Empty(t, *calls)
	assert.Equal(t, Default, d.Permission())
}

func TestPermissionDeniedWithoutTool(t *testing.T) {
	d, calls := newTestDesktop(t, false)

	assert.Equal(t, Denied, d.RequestPermission())
	assert.Equal(t, Denied, d.RequestPermission())
	require.NoError(t, d.Notify(Notification{Title: "x"}))
	assert.Empty(t, *calls)
}

func TestNotifyWritesInlineIcon(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("notify-send path")
	}
	d, calls := newTestDesktop(t, true)
	require.Equal(t, Granted, d.RequestPermission())

	icon := "data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg'><text>%E2%9C%93</text></svg>"
	require.NoError(t, d.Notify(Notification{Title: "Session complete!", Body: "Take a break.", Icon: icon}))

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, "/usr/bin/notify-send", c.name)
	assert.Equal(t, []string{"Session complete!", "Take a break."}, c.args[len(c.args)-2:])

	var iconArg string
	for _, a := range c.args {
		if filepath.Ext(a) == ".svg" {
			iconArg = a[len("--icon="):]
		}
	}
	require.NotEmpty(t, iconArg)
	b, err := os.ReadFile(iconArg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "✓")
}
