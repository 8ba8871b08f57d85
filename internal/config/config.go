package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	Dataset   string `toml:"dataset"`
	VideosDir string `toml:"videos_dir"`
	LogDir    string `toml:"log_dir"`
}

// Videos contains configuration for the project-to-video matcher.
type Videos struct {
	Extension    string `toml:"extension"`
	FallbackFile string `toml:"fallback_file"`
	// Synonyms and Stopwords replace the built-in Portuguese tables when set.
	Synonyms        map[string]string `toml:"synonyms"`
	Stopwords       []string          `toml:"stopwords"`
	WatchDebounceMS int               `toml:"watch_debounce_ms"`
}

// Resend contains credentials and addressing for the Resend email API.
type Resend struct {
	APIKey  string   `toml:"api_key"`
	BaseURL string   `toml:"base_url"`
	From    string   `toml:"from"`
	To      []string `toml:"to"`
	BCC     []string `toml:"bcc"`
}

// FormSubmit contains the endpoints of the FormSubmit form relay.
type FormSubmit struct {
	AjaxEndpoint     string `toml:"ajax_endpoint"`
	FallbackEndpoint string `toml:"fallback_endpoint"`
	Fallback         bool   `toml:"fallback"`
}

// Contact contains configuration for the contact relay server.
type Contact struct {
	Bind           string     `toml:"bind"`
	Provider       string     `toml:"provider"`
	RequestTimeout int        `toml:"request_timeout"`
	RateLimitRPS   float64    `toml:"rate_limit_rps"`
	RateLimitBurst int        `toml:"rate_limit_burst"`
	MaxBodyBytes   int64      `toml:"max_body_bytes"`
	ArchivePath    string     `toml:"archive_path"`
	Resend         Resend     `toml:"resend"`
	FormSubmit     FormSubmit `toml:"formsubmit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Greenline.
//
// Configuration sections by subsystem:
//   - Paths: dataset file, video directory, optional log directory
//   - Videos: matcher extension, placeholder file, token tables
//   - Contact: relay bind address, provider selection and credentials
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Videos  Videos  `toml:"videos"`
	Contact Contact `toml:"contact"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/greenline/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath returns the explicit path when given, else the first existing
// candidate among the user config and ./greenline.toml. When nothing exists the
// user config path is reported with exists=false.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, exists, nil
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	localPath, err := filepath.Abs("greenline.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, localPath} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// RequestTimeout returns the outbound provider timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.Contact.RequestTimeout <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(c.Contact.RequestTimeout) * time.Second
}

// WatchDebounce returns the debounce window used by the video directory watcher.
func (c *Config) WatchDebounce() time.Duration {
	if c.Videos.WatchDebounceMS <= 0 {
		return defaultWatchDebounceMS * time.Millisecond
	}
	return time.Duration(c.Videos.WatchDebounceMS) * time.Millisecond
}

// LogFile returns the relay log file path, or "" when file logging is disabled.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "greenline.log")
}

// expandPath resolves a leading "~" and makes the path absolute. "" stays "".
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML with secrets redacted.
func (c *Config) Encode() (string, error) {
	redacted := *c
	if redacted.Contact.Resend.APIKey != "" {
		redacted.Contact.Resend.APIKey = "********"
	}
	data, err := toml.Marshal(redacted)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
