package theme

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/studyplan/internal/store/jsonstore"
	"github.com/idilsaglam/studyplan/internal/ui"
)

func newController(t *testing.T, systemDark bool) (*Controller, *jsonstore.Store) {
	t.Helper()
	prefs := jsonstore.New(filepath.Join(t.TempDir(), "prefs.json"))
	return New(prefs, nil, func() bool { return systemDark }, nil), prefs
}

func TestInitFallsBackToSystemPreference(t *testing.T) {
	c, prefs := newController(t, true)

	require.NoError(t, c.Init())

	assert.True(t, c.Dark())
	assert.True(t, c.Document().Body.Contains(DarkClass))
	assert.Equal(t, ui.Current().Moon, c.Document().Icon(ui.Current()))
	v, ok, err := prefs.Get(PrefKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestInitStoredValueWinsOverSystem(t *testing.T) {
	c, prefs := newController(t, true)
	require.NoError(t, prefs.Set(PrefKey, "false"))

	require.NoError(t, c.Init())

	assert.False(t, c.Dark())
	assert.True(t, c.Document().MoonIcon.Contains("hidden"))
	assert.False(t, c.Document().SunIcon.Contains("hidden"))
}

func TestToggleTwiceRestoresState(t *testing.T) {
	for _, start := range []bool{false, true} {
		c, prefs := newController(t, start)
		require.NoError(t, c.Init())
		rootBefore := c.Document().Root.Names()
		storedBefore, _, _ := prefs.Get(PrefKey)

		dark, err := c.Toggle()
		require.NoError(t, err)
		assert.Equal(t, !start, dark)
		_, err = c.Toggle()
		require.NoError(t, err)

		assert.Equal(t, rootBefore, c.Document().Root.Names())
		storedAfter, _, _ := prefs.Get(PrefKey)
		assert.Equal(t, storedBefore, storedAfter)
	}
}

func TestSetSameStateIsIdempotent(t *testing.T) {
	c, _ := newController(t, false)
	require.NoError(t, c.Set(true))
	once := c.Document().Root.String()
	require.NoError(t, c.Set(true))

	assert.Equal(t, once, c.Document().Root.String())
	assert.Equal(t, "dark-mode", once)
}

type failingPrefs struct{}

func (failingPrefs) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingPrefs) Set(string, string) error         { return errors.New("disk gone") }

func TestStorageErrorsSurface(t *testing.T) {
	c := New(failingPrefs{}, nil, nil, nil)
	assert.Error(t, c.Init())
	assert.Error(t, c.Set(true))
}
