// Package config resolves settings from the environment, a dotenv file and
// built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	LogLevel        string
	LogPath         string
	Addr            string
	TimeFormat      string
	GCalCalendar    string
	GCalDir         string
	AnthropicAPIKey string
}

const (
	DefaultLogLevel     = "WARN"
	DefaultAddr         = ":8080"
	DefaultTimeFormat   = "15:04"
	DefaultGCalCalendar = "TimeBox"
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultDBPath  = filepath.Join(userHome, ".timebox", "timebox.db")
	DefaultGCalDir = filepath.Join(userHome, ".config", "timebox")
)

// DefaultPath is the dotenv file read when no --config flag is given
func DefaultPath() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(userHome, ".timebox", "timebox.conf")
	}
	return filepath.Join(cfgDir, "timebox", "timebox.conf")
}

// Load reads the dotenv file at path. A missing file is not an error.
func Load(path string) (Config, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	get := func(key, def string) string {
		return coalesce(os.Getenv(key), file[key], def)
	}

	return Config{
		DBPath:          get("TIMEBOX_DB_PATH", DefaultDBPath),
		LogLevel:        get("TIMEBOX_LOG_LEVEL", DefaultLogLevel),
		LogPath:         get("TIMEBOX_LOG_PATH", ""),
		Addr:            get("TIMEBOX_ADDR", DefaultAddr),
		TimeFormat:      get("TIMEBOX_TIME_FORMAT", DefaultTimeFormat),
		GCalCalendar:    get("TIMEBOX_GCAL_CALENDAR", DefaultGCalCalendar),
		GCalDir:         get("TIMEBOX_GCAL_DIR", DefaultGCalDir),
		AnthropicAPIKey: get("TIMEBOX_ANTHROPIC_API_KEY", ""),
	}, nil
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
