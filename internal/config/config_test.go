package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcmap/internal/render"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"MCMAP_DATA", "MCMAP_PREFS", "MCMAP_ADDR", "MCMAP_LOG", "MCMAP_THEME"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	c := FromEnv()
	assert.Equal(t, DefaultData, c.Data)
	assert.Equal(t, DefaultAddr, c.Addr)
	assert.Empty(t, c.Theme)
	assert.Empty(t, c.LogFile)
	assert.NotEmpty(t, c.Prefs)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MCMAP_DATA", "/tmp/points.geojson")
	t.Setenv("MCMAP_ADDR", "127.0.0.1:9000")
	t.Setenv("MCMAP_THEME", "light")
	t.Setenv("MCMAP_LOG", "debug.log")
	c := FromEnv()
	assert.Equal(t, "/tmp/points.geojson", c.Data)
	assert.Equal(t, "127.0.0.1:9000", c.Addr)
	assert.Equal(t, render.Light, c.Theme)
	assert.Equal(t, "debug.log", c.LogFile)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("MCMAP_DATA")
	os.Unsetenv("MCMAP_ADDR")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MCMAP_DATA=world.csv\nMCMAP_ADDR=:7070\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "world.csv", c.Data)
	assert.Equal(t, ":7070", c.Addr)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultData, c.Data)
}
