package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("STUDYPLAN_HOME", t.TempDir())
	t.Setenv("STUDYPLAN_API", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 25, cfg.WorkMinutes)
	assert.Equal(t, 5, cfg.BreakMinutes)
	assert.Equal(t, "rain", cfg.Noise)
	assert.True(t, cfg.Notifications)
	assert.Equal(t, cfg.Path("studyplan.log"), cfg.LogFile)
}

func TestLogFileFollowsDataDir(t *testing.T) {
	t.Setenv("STUDYPLAN_HOME", "")
	dir := t.TempDir()
	data := filepath.Join(dir, "data")

	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("data_dir: "+data+"\n"), 0o644))
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, data, cfg.DataDir)
	assert.Equal(t, filepath.Join(data, "studyplan.log"), cfg.LogFile)

	require.NoError(t, os.WriteFile(p, []byte("data_dir: "+data+"\nlog_file: /tmp/sp.log\n"), 0o644))
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sp.log", cfg.LogFile)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STUDYPLAN_HOME", home)
	t.Setenv("STUDYPLAN_API", "http://planner.test")
	t.Setenv("STUDYPLAN_NOTIFICATIONS", "false")

	p := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("api_url: http://ignored\nwork_minutes: 50\nnoise: ocean\nvolume: 80\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "http://planner.test", cfg.APIURL)
	assert.Equal(t, 50, cfg.WorkMinutes)
	assert.Equal(t, 5, cfg.BreakMinutes)
	assert.Equal(t, "ocean", cfg.Noise)
	assert.Equal(t, 80, cfg.Volume)
	assert.False(t, cfg.Notifications)
	assert.Equal(t, filepath.Join(home, "prefs.json"), cfg.Path("prefs.json"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STUDYPLAN_HOME", t.TempDir())
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "work_minutes: [\n"},
		{"zero work", "work_minutes: 0\n"},
		{"volume", "volume: 140\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(p, []byte(tt.body), 0o644))
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}
