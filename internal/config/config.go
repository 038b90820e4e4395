// Package config handles XDG configuration directory and file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"taskdash/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "taskdash"

	// OAuthClientFile is the OAuth client credentials filename (google backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored credential filename.
	TokenFile = "token.json"

	// DefaultAPIURL is the base URL of the task-manager REST API.
	DefaultAPIURL = "https://task-manager-api-nj4e.onrender.com/api"
)

// Backend names.
const (
	BackendREST   = "rest"
	BackendGoogle = "google"
)

// Environment variables read by Load.
const (
	EnvAPIURL    = "TASKDASH_API_URL"
	EnvBackend   = "TASKDASH_BACKEND"
	EnvLogLevel  = "TASKDASH_LOG_LEVEL"
	EnvLogFormat = "TASKDASH_LOG_FORMAT"
	EnvPassword  = "TASKDASH_PASSWORD"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the REST API base URL.
	APIURL string

	// Backend selects the task backend: "rest" or "google".
	Backend string

	// LogLevel and LogFormat are passed to the logger.
	LogLevel  string
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger is set by the dispatcher. May be nil in tests.
	Logger *logrus.Logger
}

// Overrides carries values given on the command line. Empty fields fall
// back to the environment and then to defaults.
type Overrides struct {
	ConfigDir string
	APIURL    string
	Backend   string
}

// Load builds a Config from flag overrides, then environment, then defaults.
// An empty ConfigDir means XDG_CONFIG_HOME/taskdash or $HOME/.config/taskdash.
func Load(o Overrides) (*Config, error) {
	dir := o.ConfigDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	apiURL := firstNonEmpty(o.APIURL, os.Getenv(EnvAPIURL), DefaultAPIURL)
	apiURL = strings.TrimRight(apiURL, "/")

	backend := strings.ToLower(firstNonEmpty(o.Backend, os.Getenv(EnvBackend), BackendREST))
	if backend != BackendREST && backend != BackendGoogle {
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}

	return &Config{
		Dir:       dir,
		APIURL:    apiURL,
		Backend:   backend,
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *logrus.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
