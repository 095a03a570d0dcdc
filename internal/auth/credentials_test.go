package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Setenv(envSession, "")
	dir := filepath.Join(t.TempDir(), ".studyplan")
	s := NewStore(dir)

	c, err := s.Get()
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, s.Set(" sess-1 ", "ada@example.com"))
	fi, err := os.Stat(filepath.Join(dir, credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	c, err = s.Get()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "sess-1", c.Session)
	assert.Equal(t, "file", c.Source)
	assert.Equal(t, "sess-1", s.Session())

	require.NoError(t, s.Delete())
	require.NoError(t, s.Delete())
	assert.Empty(t, s.Session())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(envSession, "from-env")
	c, err := NewStore(t.TempDir()).Get()
	require.NoError(t, err)
	assert.Equal(t, "env", c.Source)
	assert.Equal(t, "from-env", c.Session)
}

func TestSetRejectsEmpty(t *testing.T) {
	assert.Error(t, NewStore(t.TempDir()).Set("  ", ""))
}
