package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/internal/db"
	"Reposition/internal/jobs"
	"Reposition/internal/notify"
	"Reposition/pkg/repoapi"
)

// baseURLEnv overrides the configured API base URL
const baseURLEnv = "REPOSITION_API_BASE_URL"

// session storage backends
const (
	storageFile  = "file"
	storageRedis = "redis"
)

// Config represents a complete configuration
type Config struct {
	Language    string                `toml:"language,omitempty"`
	Log         LogConfig             `toml:"log,omitempty"`
	API         repoapi.Config        `toml:"api,omitempty"`
	Session     SessionConfig         `toml:"session,omitempty"`
	Redis       db.RedisConfig        `toml:"redis,omitempty"`
	TelegramBot notify.TelegramConfig `toml:"telegram_bot,omitempty"`
	Jobs        jobs.Config           `toml:"jobs,omitempty"`
}

// LogConfig represents a configuration for the global logger
type LogConfig struct {
	Level string `toml:"level,omitempty"`
	Path  string `toml:"path,omitempty"`
}

// SessionConfig represents a configuration for the session storage
type SessionConfig struct {
	Storage   string `toml:"storage,omitempty"` // file or redis
	Path      string `toml:"path,omitempty"`
	KeyPrefix string `toml:"key_prefix,omitempty"`
}

// LoadConfig loads a configuration from the given file, a missing file leaves the defaults
func LoadConfig(path string) (c Config, err error) {
	f, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debugf("config file %s not found, using defaults", path)
	case err != nil:
		return c, errors.Wrap(err, "failed to read config file")
	default:
		if err = toml.Unmarshal(f, &c); err != nil {
			return c, errors.Wrap(err, "failed to parse config file")
		}
	}

	if err = c.setupLogger(); err != nil {
		return c, err
	}
	if err = c.setupDefaults(); err != nil {
		return c, err
	}
	return c, nil
}

// setupLogger sets up the global logger configuration
// logs go to stderr, leaving stdout to the pages
func (c *Config) setupLogger() error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if c.Log.Level == "" {
		c.Log.Level = "warning"
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return errors.Wrap(err, "failed to parse log level")
	}
	log.SetLevel(level)
	log.Debugf("log level set to %s", strings.ToUpper(level.String()))
	if level >= log.DebugLevel {
		log.SetReportCaller(true)
	}

	if c.Log.Path != "" {
		f, err := os.OpenFile(c.Log.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "failed to open log file")
		}
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}

// setupDefaults fills in the settings left empty
func (c *Config) setupDefaults() error {
	if u := os.Getenv(baseURLEnv); u != "" {
		c.API.BaseURL = u
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = repoapi.DefaultBaseURL
	}
	if c.Language == "" {
		c.Language = "en"
	}

	switch c.Session.Storage {
	case "":
		c.Session.Storage = storageFile
	case storageFile:
	case storageRedis:
		if !c.Redis.Enabled() {
			return errors.New("redis session storage needs a redis address (`address`) in config")
		}
	default:
		return errors.Errorf("unknown session storage %q", c.Session.Storage)
	}
	if c.Session.Storage == storageFile && c.Session.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return errors.Wrap(err, "failed to find the user config directory")
		}
		c.Session.Path = filepath.Join(dir, "reposition", "session.toml")
	}
	return nil
}
