package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Credential storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CacheDir       string
	DBPath         string
	LogPath        string
	LogLevel       string
	LogFormat      string
	PetListTTL     time.Duration
	PetTTL         time.Duration
	FetchPageSize  int
	// BookingPollInterval is how often a signed-in user's bookings are
	// checked for status changes. Zero disables the watcher.
	BookingPollInterval time.Duration
	Credentials         CredentialsConfig
}

// CredentialsConfig selects where the persisted session lives.
type CredentialsConfig struct {
	Backend     string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string
}

func Default() Config {
	cacheDir := filepath.Join(userConfigDir(), "petcare")
	return Config{
		APIBaseURL:     "http://localhost:5000/api",
		RequestTimeout: 10 * time.Second,
		CacheDir:       cacheDir,
		DBPath:         filepath.Join(cacheDir, "petcare.db"),
		LogPath:        filepath.Join(cacheDir, "petcare.log"),
		LogLevel:       "info",
		LogFormat:      "text",
		PetListTTL:     60 * time.Second,
		PetTTL:         5 * time.Minute,
		FetchPageSize:  50,

		BookingPollInterval: 2 * time.Minute,
		Credentials: CredentialsConfig{
			Backend:     BackendSQLite,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "petcare:",
		},
	}
}

// fileConfig mirrors Config for the YAML file. Zero values keep defaults.
type fileConfig struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Cache struct {
		Dir        string        `yaml:"dir"`
		DBPath     string        `yaml:"db_path"`
		PetListTTL time.Duration `yaml:"pet_list_ttl"`
		PetTTL     time.Duration `yaml:"pet_ttl"`
		PageSize   int           `yaml:"page_size"`
	} `yaml:"cache"`
	Log struct {
		Path   string `yaml:"path"`
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Monitor struct {
		Interval *time.Duration `yaml:"interval"`
	} `yaml:"monitor"`
	Credentials struct {
		Backend     string `yaml:"backend"`
		RedisAddr   string `yaml:"redis_addr"`
		RedisDB     int    `yaml:"redis_db"`
		RedisPrefix string `yaml:"redis_prefix"`
	} `yaml:"credentials"`
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// non-empty) and then with PETCARE_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the -config flag
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.applyYAML(data); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	setString(&c.APIBaseURL, fc.API.BaseURL)
	setDuration(&c.RequestTimeout, fc.API.Timeout)
	if fc.Cache.Dir != "" {
		c.CacheDir = fc.Cache.Dir
		c.DBPath = filepath.Join(fc.Cache.Dir, "petcare.db")
		c.LogPath = filepath.Join(fc.Cache.Dir, "petcare.log")
	}
	setString(&c.DBPath, fc.Cache.DBPath)
	setDuration(&c.PetListTTL, fc.Cache.PetListTTL)
	setDuration(&c.PetTTL, fc.Cache.PetTTL)
	if fc.Cache.PageSize > 0 {
		c.FetchPageSize = fc.Cache.PageSize
	}
	setString(&c.LogPath, fc.Log.Path)
	setString(&c.LogLevel, fc.Log.Level)
	setString(&c.LogFormat, fc.Log.Format)
	if fc.Monitor.Interval != nil && *fc.Monitor.Interval >= 0 {
		c.BookingPollInterval = *fc.Monitor.Interval
	}
	setString(&c.Credentials.Backend, fc.Credentials.Backend)
	setString(&c.Credentials.RedisAddr, fc.Credentials.RedisAddr)
	setString(&c.Credentials.RedisPrefix, fc.Credentials.RedisPrefix)
	if fc.Credentials.RedisDB > 0 {
		c.Credentials.RedisDB = fc.Credentials.RedisDB
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PETCARE_API_URL"); ok {
		setString(&c.APIBaseURL, v)
	}
	if v, ok := lookup("PETCARE_LOG_LEVEL"); ok {
		setString(&c.LogLevel, v)
	}
	if v, ok := lookup("PETCARE_CREDENTIALS_BACKEND"); ok {
		setString(&c.Credentials.Backend, v)
	}
	if v, ok := lookup("PETCARE_REDIS_ADDR"); ok {
		setString(&c.Credentials.RedisAddr, v)
	}
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	switch c.Credentials.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Credentials.RedisAddr == "" {
			return fmt.Errorf("redis credentials backend needs an address")
		}
	default:
		return fmt.Errorf("unknown credentials backend %q (valid: %s, %s)",
			c.Credentials.Backend, BackendSQLite, BackendRedis)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
