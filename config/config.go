package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/i18n"
	"a11ypack/internal/validation"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

const (
	defaultPort            = "8080"
	defaultBodyLimitBytes  = 64 << 10
	defaultRateLimitMax    = 30
	defaultRateLimitWindow = time.Minute
	defaultContentCacheTTL = 10 * time.Minute
)

// Config holds application configuration.
type Config struct {
	Env             Environment
	Port            string
	LogLevel        string
	LogFormat       string
	LogOutput       string
	LogFilePath     string
	DefaultLanguage i18n.Language
	RateLimit       RateLimitConfig
	TrustProxy      bool
	BodyLimitBytes  int64
	ContentCacheTTL time.Duration
	SettingsPath    string
}

// RateLimitConfig bounds POST traffic per client.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type SettingsFile struct {
	App     AppSettings     `json:"app"`
	HTTP    HTTPSettings    `json:"http"`
	Content ContentSettings `json:"content"`
}

type AppSettings struct {
	Env             string          `json:"env"`
	Port            int             `json:"port"`
	DefaultLanguage string          `json:"default_language"`
	Logging         LoggingSettings `json:"logging"`
}

type LoggingSettings struct {
	Level    string `json:"level"`
	Format   string `json:"format"`
	Output   string `json:"output"`
	FilePath string `json:"file_path"`
}

type HTTPSettings struct {
	TrustProxy     bool              `json:"trust_proxy"`
	BodyLimitBytes int64             `json:"body_limit_bytes"`
	RateLimit      RateLimitSettings `json:"rate_limit"`
}

type RateLimitSettings struct {
	MaxRequests int    `json:"max_requests"`
	Window      string `json:"window"`
}

type ContentSettings struct {
	CacheTTL string `json:"cache_ttl"`
}

// Load reads .env, then an optional JSON settings file, then environment
// variables. Environment variables win over the settings file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults(parseEnv(getEnv("APP_ENV", "dev")))
	settings, settingsPath, err := loadSettingsFile()
	switch {
	case err == nil:
		if applyErr := cfg.applySettings(*settings); applyErr != nil {
			return Config{}, fmt.Errorf("settings file %s: %w", settingsPath, applyErr)
		}
		cfg.SettingsPath = settingsPath
	case errors.Is(err, os.ErrNotExist) && settingsPath == "":
	default:
		return Config{}, fmt.Errorf("settings file %s: %w", settingsPath, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	applyLoggingEnv(cfg)
	return cfg, nil
}

func defaults(env Environment) Config {
	return Config{
		Env:             env,
		Port:            defaultPort,
		LogLevel:        defaultLogLevel(env),
		LogFormat:       defaultLogFormat(env),
		LogOutput:       "stdout",
		DefaultLanguage: i18n.DefaultLanguage,
		RateLimit:       RateLimitConfig{MaxRequests: defaultRateLimitMax, Window: defaultRateLimitWindow},
		BodyLimitBytes:  defaultBodyLimitBytes,
		ContentCacheTTL: defaultContentCacheTTL,
	}
}

func loadSettingsFile() (*SettingsFile, string, error) {
	if settingsPath := strings.TrimSpace(getEnv("SETTINGS_PATH", "")); settingsPath != "" {
		settings, err := readSettings(settingsPath)
		if errors.Is(err, os.ErrNotExist) {
			return nil, settingsPath, fmt.Errorf("%w: %w", a11yerrors.ErrSettingsNotFound, err)
		}
		return settings, settingsPath, err
	}

	envName := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev")))
	candidates := []string{fmt.Sprintf("settings.%s.json", envName), "settings.json", "/etc/a11ypack/settings.json"}
	for _, candidate := range candidates {
		absPath, absErr := filepath.Abs(candidate)
		if absErr != nil {
			continue
		}
		if _, statErr := os.Stat(absPath); statErr != nil {
			continue
		}
		settings, err := readSettings(absPath)
		return settings, absPath, err
	}
	return nil, "", os.ErrNotExist
}

func readSettings(path string) (*SettingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var settings SettingsFile
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: %w", a11yerrors.ErrInvalidSettings, err)
	}
	return &settings, nil
}

func (c *Config) applySettings(s SettingsFile) error {
	if env := strings.TrimSpace(s.App.Env); env != "" {
		*c = defaults(parseEnv(env))
	}
	if s.App.Port > 0 {
		c.Port = strconv.Itoa(s.App.Port)
	}
	if lang := strings.TrimSpace(s.App.DefaultLanguage); lang != "" {
		c.DefaultLanguage = i18n.Language(strings.ToLower(lang))
	}
	setIfNotEmpty(&c.LogLevel, s.App.Logging.Level)
	setIfNotEmpty(&c.LogFormat, s.App.Logging.Format)
	setIfNotEmpty(&c.LogOutput, s.App.Logging.Output)
	setIfNotEmpty(&c.LogFilePath, s.App.Logging.FilePath)
	c.TrustProxy = s.HTTP.TrustProxy
	if s.HTTP.BodyLimitBytes > 0 {
		c.BodyLimitBytes = s.HTTP.BodyLimitBytes
	}
	if s.HTTP.RateLimit.MaxRequests > 0 {
		c.RateLimit.MaxRequests = s.HTTP.RateLimit.MaxRequests
	}
	if window := strings.TrimSpace(s.HTTP.RateLimit.Window); window != "" {
		parsed, err := time.ParseDuration(window)
		if err != nil {
			return fmt.Errorf("%w: rate_limit.window: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.RateLimit.Window = parsed
	}
	if ttl := strings.TrimSpace(s.Content.CacheTTL); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("%w: content.cache_ttl: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.ContentCacheTTL = parsed
	}
	return nil
}

func (c *Config) applyEnv() error {
	if value, ok := lookupEnv("APP_ENV"); ok {
		c.Env = parseEnv(value)
	}
	if value, ok := lookupEnv("PORT"); ok {
		c.Port = value
	}
	if value, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = value
	}
	if value, ok := lookupEnv("LOG_FORMAT"); ok {
		c.LogFormat = value
	}
	if value, ok := lookupEnv("LOG_OUTPUT"); ok {
		c.LogOutput = value
	}
	if value, ok := lookupEnv("LOG_FILE_PATH"); ok {
		c.LogFilePath = value
	}
	if value, ok := lookupEnv("DEFAULT_LANGUAGE"); ok {
		c.DefaultLanguage = i18n.Language(strings.ToLower(value))
	}
	if value, ok := lookupEnv("TRUST_PROXY"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: TRUST_PROXY: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.TrustProxy = parsed
	}
	if value, ok := lookupEnv("RATE_LIMIT_MAX_REQUESTS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: RATE_LIMIT_MAX_REQUESTS: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.RateLimit.MaxRequests = parsed
	}
	if value, ok := lookupEnv("RATE_LIMIT_WINDOW"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: RATE_LIMIT_WINDOW: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.RateLimit.Window = parsed
	}
	if value, ok := lookupEnv("BODY_LIMIT_BYTES"); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w: BODY_LIMIT_BYTES: %q", a11yerrors.ErrInvalidSettings, value)
		}
		c.BodyLimitBytes = parsed
	}
	if value, ok := lookupEnv("CONTENT_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: CONTENT_CACHE_TTL: %w", a11yerrors.ErrInvalidSettings, err)
		}
		c.ContentCacheTTL = parsed
	}
	return nil
}

// Validate checks the values that would otherwise fail late at startup.
func (c Config) Validate() error {
	if err := validation.ValidatePort(c.Port); err != nil {
		return fmt.Errorf("port %q: %w", c.Port, err)
	}
	if err := validation.ValidateLanguageCode(string(c.DefaultLanguage)); err != nil {
		return fmt.Errorf("default language %q: %w", c.DefaultLanguage, err)
	}
	if err := validation.ValidateRateLimit(c.RateLimit.MaxRequests, c.RateLimit.Window); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// applyLoggingEnv exports the resolved logging options so logger.Init sees them.
func applyLoggingEnv(cfg Config) {
	if strings.TrimSpace(cfg.LogOutput) != "" {
		_ = os.Setenv("LOG_OUTPUT", cfg.LogOutput)
	}
	if strings.TrimSpace(cfg.LogFormat) != "" {
		_ = os.Setenv("LOG_FORMAT", cfg.LogFormat)
	}
	if strings.TrimSpace(cfg.LogFilePath) != "" {
		_ = os.Setenv("LOG_FILE_PATH", cfg.LogFilePath)
	}
}

func parseEnv(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return EnvProd
	default:
		return EnvDev
	}
}

func defaultLogLevel(env Environment) string {
	if env == EnvProd {
		return "info"
	}
	return "debug"
}

func defaultLogFormat(env Environment) string {
	if env == EnvProd {
		return "json"
	}
	return "console"
}

func setIfNotEmpty(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func lookupEnv(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
