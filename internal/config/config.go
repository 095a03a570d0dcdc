// Package config loads studyplan settings from ~/.studyplan/config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL       = "http://localhost:5000"
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	DefaultNoise        = "rain"
	DefaultVolume       = 50
)

type Config struct {
	// APIURL is the planner backend base URL (STUDYPLAN_API)
	APIURL string `yaml:"api_url"`

	// WorkMinutes is the initial work session length
	WorkMinutes int `yaml:"work_minutes"`

	// BreakMinutes is the initial break length
	BreakMinutes int `yaml:"break_minutes"`

	// Noise is the ambient profile: rain, forest, ocean, coffee or none
	Noise string `yaml:"noise"`

	// Volume is 0-100
	Volume int `yaml:"volume"`

	Notifications bool `yaml:"notifications"`

	// LogFile receives structured logs; the TUI owns stdout. Empty means
	// studyplan.log under DataDir.
	LogFile string `yaml:"log_file"`

	// DataDir holds preferences, credentials and history (STUDYPLAN_HOME)
	DataDir string `yaml:"data_dir"`
}

// Home returns the studyplan home directory, ~/.studyplan unless
// STUDYPLAN_HOME is set.
func Home() string {
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".studyplan")
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(Home(), "config.yaml")
}

func Default() Config {
	home := Home()
	return Config{
		APIURL:        DefaultAPIURL,
		WorkMinutes:   DefaultWorkMinutes,
		BreakMinutes:  DefaultBreakMinutes,
		Noise:         DefaultNoise,
		Volume:        DefaultVolume,
		Notifications: true,
		DataDir:       home,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if cfg.LogFile == "" {
		cfg.LogFile = cfg.Path("studyplan.log")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.APIURL = getEnvDefault("STUDYPLAN_API", cfg.APIURL)
	cfg.DataDir = getEnvDefault("STUDYPLAN_HOME", cfg.DataDir)
	if v := os.Getenv("STUDYPLAN_NOTIFICATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Notifications = b
		}
	}
}

func (c Config) Validate() error {
	if c.WorkMinutes <= 0 || c.BreakMinutes <= 0 {
		return fmt.Errorf("config: work_minutes and break_minutes must be positive")
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("config: volume must be within 0-100, got %d", c.Volume)
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("config: api_url is required")
	}
	return nil
}

// Path joins parts under the data directory.
func (c Config) Path(parts ...string) string {
	return filepath.Join(append([]string{c.DataDir}, parts...)...)
}

func getEnvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
