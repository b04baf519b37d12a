package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "TASKVVTS"

	DefaultAPIURL  = "http://localhost:8080/api/v1"
	DefaultTimeout = 10 * time.Second

	fileName = "taskvvts.yml"
)

type Config struct {
	APIURL   string        `json:"apiUrl"`
	Timeout  time.Duration `json:"timeout"`
	Locale   string        `json:"locale"`
	DataDir  string        `json:"dataDir"`
	LogLevel string        `json:"logLevel"`

	// ClearOnUnauthorized drops the stored token when the API answers 401.
	// Off by default: a 401 only sends the user back to the login screen.
	ClearOnUnauthorized bool `json:"clearOnUnauthorized"`

	// Path is the config file that was read (or would be read).
	Path string `json:"path"`
}

// Dir is the config directory. TASKVVTS_CONFIG_DIR keeps tests away from the
// real home directory.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_DIR")); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); v != "" {
		return filepath.Join(v, "taskvvts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taskvvts"), nil
}

// DefaultPath is where Load looks when no explicit file is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func newViper(path, dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("locale", "en")
	v.SetDefault("data_dir", dir)
	v.SetDefault("log_level", "info")
	v.SetDefault("session.clear_on_unauthorized", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present), the YAML config file and TASKVVTS_* env
// vars, in increasing precedence. A missing config file is not an error.
func Load(explicitPath string) (*Config, error) {
	_ = godotenv.Load(".env")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		path = filepath.Join(dir, fileName)
	}

	v := newViper(path, dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		APIURL:              strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/"),
		Timeout:             v.GetDuration("timeout"),
		Locale:              strings.TrimSpace(v.GetString("locale")),
		DataDir:             strings.TrimSpace(v.GetString("data_dir")),
		LogLevel:            strings.TrimSpace(v.GetString("log_level")),
		ClearOnUnauthorized: v.GetBool("session.clear_on_unauthorized"),
		Path:                path,
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// WriteDefaults writes a config file with the current values so users have
// something to edit. Existing files are left alone.
func WriteDefaults(cfg *Config) (bool, error) {
	if _, err := os.Stat(cfg.Path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return false, err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("api_url", cfg.APIURL)
	v.Set("timeout", cfg.Timeout.String())
	v.Set("locale", cfg.Locale)
	v.Set("data_dir", cfg.DataDir)
	v.Set("log_level", cfg.LogLevel)
	v.Set("session.clear_on_unauthorized", cfg.ClearOnUnauthorized)
	if err := v.WriteConfigAs(cfg.Path); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.sqlite")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "taskvvts.log")
}
