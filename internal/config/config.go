package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultHTTPAddr   = ":5000"
	defaultDBPath     = "data/smarthome.db"
	defaultJWTSecret  = "smarthome-dev-secret"
	defaultTokenTTL   = time.Hour
	defaultAPIBaseURL = "http://localhost:5000"
	defaultCachePath  = "smarthome-cache.db"

	// FileEnv names the environment variable holding an optional YAML config file.
	FileEnv = "SMARTHOME_CONFIG"
)

// Server stores backend runtime settings.
type Server struct {
	HTTPAddr  string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	SeedDemo  bool
	LogLevel  slog.Level
	LogFormat string
}

// DefaultJWTSecret reports whether tokens are signed with the built-in
// development secret.
func (c Server) DefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// DBDir returns the target directory for DBPath.
func (c Server) DBDir() string {
	return filepath.Dir(c.DBPath)
}

// Client stores CLI runtime settings.
type Client struct {
	APIBaseURL string
	CachePath  string
	// APITimeout of zero means requests are bounded only by their context.
	APITimeout time.Duration
	SeedDemo   bool
	LogLevel   slog.Level
	LogFormat  string
}

// LoadServer builds Server settings from defaults, the optional YAML file and
// environment variables, in increasing precedence.
func LoadServer() (Server, error) {
	v, err := newViper(map[string]any{
		"http_addr":  defaultHTTPAddr,
		"db_path":    defaultDBPath,
		"jwt_secret": defaultJWTSecret,
		"token_ttl":  defaultTokenTTL.String(),
		"seed_demo":  "true",
		"log_level":  "info",
		"log_format": "json",
	})
	if err != nil {
		return Server{}, err
	}
	return Server{
		HTTPAddr:  getString(v, "http_addr", defaultHTTPAddr),
		DBPath:    getString(v, "db_path", defaultDBPath),
		JWTSecret: getString(v, "jwt_secret", defaultJWTSecret),
		TokenTTL:  parseDuration(v, "token_ttl", defaultTokenTTL, false),
		SeedDemo:  parseBool(v, "seed_demo", true),
		LogLevel:  parseLogLevel(getString(v, "log_level", "info")),
		LogFormat: getString(v, "log_format", "json"),
	}, nil
}

// LoadClient builds Client settings the same way as LoadServer.
func LoadClient() (Client, error) {
	v, err := newViper(map[string]any{
		"api_base_url": defaultAPIBaseURL,
		"cache_path":   defaultCachePath,
		"api_timeout":  "0s",
		"seed_demo":    "true",
		"log_level":    "warn",
		"log_format":   "text",
	})
	if err != nil {
		return Client{}, err
	}
	return Client{
		APIBaseURL: strings.TrimSuffix(getString(v, "api_base_url", defaultAPIBaseURL), "/"),
		CachePath:  getString(v, "cache_path", defaultCachePath),
		APITimeout: parseDuration(v, "api_timeout", 0, true),
		SeedDemo:   parseBool(v, "seed_demo", true),
		LogLevel:   parseLogLevel(getString(v, "log_level", "warn")),
		LogFormat:  getString(v, "log_format", "text"),
	}, nil
}

func newViper(defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	path := strings.TrimSpace(os.Getenv(FileEnv))
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

func getString(v *viper.Viper, key string, fallback string) string {
	trimmed := strings.TrimSpace(v.GetString(key))
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration, allowZero bool) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 || (value == 0 && !allowZero) {
		return fallback
	}
	return value
}

func parseBool(v *viper.Viper, key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return fallback
	}
	return value
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
