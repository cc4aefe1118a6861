// Package config loads runtime settings from the environment, an optional
// .env file and an optional config.yaml in the working directory.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/takak2166/tumblr2ghost/internal/logger"
)

// Config holds all settings for a run
type Config struct {
	TumblrAPIKey      string
	TumblrAPIURL      string
	PageSize          int
	RequestsPerSecond float64
	HTTPTimeout       time.Duration

	LogLevel  string
	LogFormat string
	OutputDir string
	HTTPAddr  string

	ExportVersion   string
	AuthorID        int
	WrapDB          bool
	ConvertMarkdown bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TUMBLR_API_URL", "https://api.tumblr.com/v2")
	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("REQUESTS_PER_SECOND", 5.0)
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("OUTPUT_DIR", "output")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("EXPORT_VERSION", "000")
	v.SetDefault("AUTHOR_ID", 1)
	v.SetDefault("WRAP_DB", false)
	v.SetDefault("CONVERT_MARKDOWN", false)
}

// Load reads .env (if present), then config.yaml from dir (if present),
// with environment variables taking precedence over both.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		TumblrAPIKey:      v.GetString("TUMBLR_API_KEY"),
		TumblrAPIURL:      v.GetString("TUMBLR_API_URL"),
		PageSize:          v.GetInt("PAGE_SIZE"),
		RequestsPerSecond: v.GetFloat64("REQUESTS_PER_SECOND"),
		HTTPTimeout:       v.GetDuration("HTTP_TIMEOUT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		OutputDir:         v.GetString("OUTPUT_DIR"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		ExportVersion:     v.GetString("EXPORT_VERSION"),
		AuthorID:          v.GetInt("AUTHOR_ID"),
		WrapDB:            v.GetBool("WRAP_DB"),
		ConvertMarkdown:   v.GetBool("CONVERT_MARKDOWN"),
	}

	if cfg.PageSize <= 0 || cfg.PageSize > 20 {
		return nil, fmt.Errorf("PAGE_SIZE must be between 1 and 20, got %d", cfg.PageSize)
	}
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("REQUESTS_PER_SECOND must not be negative, got %v", cfg.RequestsPerSecond)
	}
	if cfg.AuthorID <= 0 {
		return nil, fmt.Errorf("AUTHOR_ID must be positive, got %d", cfg.AuthorID)
	}

	return cfg, nil
}

// RequireAPIKey reports an error when no Tumblr API key is configured
func (c *Config) RequireAPIKey() error {
	if c.TumblrAPIKey == "" {
		return fmt.Errorf("TUMBLR_API_KEY is not set")
	}
	return nil
}
