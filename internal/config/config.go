package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"mcmap/internal/render"
)

// Config is the process configuration, read from the environment after an
// optional .env file.
type Config struct {
	Data    string
	Prefs   string
	Addr    string
	LogFile string
	// Theme is empty unless MCMAP_THEME is set, so saved prefs win by default.
	Theme render.Theme
}

const (
	DefaultData = "map.csv"
	DefaultAddr = ":8080"
)

// Load reads envFile (if present) into the environment without overriding
// variables that are already set, then builds a Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from MCMAP_* variables.
func FromEnv() Config {
	return Config{
		Data:    env("MCMAP_DATA", DefaultData),
		Prefs:   env("MCMAP_PREFS", defaultPrefsPath()),
		Addr:    env("MCMAP_ADDR", DefaultAddr),
		LogFile: os.Getenv("MCMAP_LOG"),
		Theme:   theme(os.Getenv("MCMAP_THEME")),
	}
}

func theme(s string) render.Theme {
	if s == "" {
		return ""
	}
	return render.ParseTheme(s)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mcmap-prefs.yaml"
	}
	return filepath.Join(dir, "mcmap", "prefs.yaml")
}
