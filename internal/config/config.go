package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration for whl, stored in ~/.whl/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Summary SummaryConfig `json:"summary"`
	Timer   TimerConfig   `json:"timer"`
	Auth    AuthConfig    `json:"auth"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects where work logs are kept.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `json:"backend"`
	// Path is the data directory. Empty means the whl home directory.
	Path string `json:"path"`
}

type SummaryConfig struct {
	StandardHours float64 `json:"standard_hours"`
	RollingDays   int     `json:"rolling_days"`
}

// TimerConfig holds durations in time.ParseDuration syntax.
type TimerConfig struct {
	MinSession string `json:"min_session"`
	Tick       string `json:"tick"`
}

// AuthConfig selects the login provider.
type AuthConfig struct {
	// Provider is "local" or "oauth2".
	Provider string `json:"provider"`
	// Users maps usernames to argon2id password hashes for the local provider.
	Users  map[string]string `json:"users"`
	OAuth2 OAuth2Config      `json:"oauth2"`
}

// OAuth2Config configures the resource-owner password grant.
type OAuth2Config struct {
	TokenURL     string   `json:"token_url"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
}

type LogConfig struct {
	Level string `json:"level"`
}

const (
	// HomeEnv overrides the whl home directory.
	HomeEnv = "WHL_HOME"

	DefaultBackend       = "file"
	DefaultStandardHours = 8.0
	DefaultRollingDays   = 14
	DefaultMinSession    = time.Minute
	DefaultTick          = time.Second
	DefaultProvider      = "local"
	DefaultLogLevel      = "warn"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{Backend: DefaultBackend},
		Summary: SummaryConfig{StandardHours: DefaultStandardHours, RollingDays: DefaultRollingDays},
		Timer:   TimerConfig{MinSession: DefaultMinSession.String(), Tick: DefaultTick.String()},
		Auth:    AuthConfig{Provider: DefaultProvider, Users: map[string]string{}},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// whl configuration - ~/.whl/config.json
//
// All settings are optional; missing values fall back to the defaults below.
{
  "storage": {
    // "file" keeps one JSON document per key under <path>/data,
    // "sqlite" keeps them in <path>/whl.db.
    "backend": "file",
    // Data directory. Empty means the directory holding this file.
    "path": ""
  },

  "summary": {
    // Hours above this count as overwork.
    "standard_hours": 8,
    // Days shown by "whl summary" and the dashboard.
    "rolling_days": 14
  },

  "timer": {
    // Timer sessions shorter than this are discarded on stop.
    "min_session": "1m0s",
    // Dashboard refresh interval.
    "tick": "1s"
  },

  "auth": {
    // "local" checks passwords against the hashes in "users";
    // "oauth2" exchanges them at "oauth2.token_url".
    "provider": "local",
    // Username to argon2id hash. Set with: whl passwd <user>
    "users": {},
    "oauth2": {
      "token_url": "",
      "client_id": "",
      // Optional "scopes": ["openid"] may be added here.
      "client_secret": ""
    }
  },

  "log": {
    // debug, info, warn or error.
    "level": "warn"
  }
}
`

// Home returns the whl home directory: $WHL_HOME or ~/.whl.
func Home() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".whl"), nil
}

// FilePath returns the config file inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config in the whl home directory. See LoadFrom.
func Load() (Config, error) {
	dir, err := Home()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadFrom(dir)
}

// LoadFrom reads dir/config.json, creating it with annotated defaults on
// first run. A relative storage path is resolved against dir.
func LoadFrom(dir string) (Config, error) {
	path := FilePath(dir)
	def := defaultConfig()
	def.Storage.Path = dir

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return def, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.fill(def)
	if !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(dir, cfg.Storage.Path)
	}
	return cfg, nil
}

// fill replaces zero-value fields with the ones from def.
func (c *Config) fill(def Config) {
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Summary.StandardHours <= 0 {
		c.Summary.StandardHours = def.Summary.StandardHours
	}
	if c.Summary.RollingDays <= 0 {
		c.Summary.RollingDays = def.Summary.RollingDays
	}
	if c.Timer.MinSession == "" {
		c.Timer.MinSession = def.Timer.MinSession
	}
	if c.Timer.Tick == "" {
		c.Timer.Tick = def.Timer.Tick
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = def.Auth.Provider
	}
	if c.Auth.Users == nil {
		c.Auth.Users = map[string]string{}
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// MinSession returns timer.min_session, or the default when it does not parse.
func (c Config) MinSession() time.Duration {
	return parseDuration(c.Timer.MinSession, DefaultMinSession)
}

// Tick returns timer.tick, or the default when it does not parse.
func (c Config) Tick() time.Duration {
	return parseDuration(c.Timer.Tick, DefaultTick)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Save writes cfg to dir/config.json. Comments in an existing file are lost.
func Save(dir string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	path := FilePath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return os.Rename(tmp, path)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
