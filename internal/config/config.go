package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string        `mapstructure:"port"`
	LogLevel     string        `mapstructure:"log_level"`
	LogPretty    bool          `mapstructure:"log_pretty"`
	WordsFile    string        `mapstructure:"words_file"`
	DBPath       string        `mapstructure:"db_path"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	ClientOrigin string        `mapstructure:"client_origin"`
	Production   bool          `mapstructure:"production"`
	GameIdleTTL  time.Duration `mapstructure:"game_idle_ttl"`
	Game         GameConfig    `mapstructure:",squash"`
	Daily        DailyConfig   `mapstructure:",squash"`
}

type GameConfig struct {
	DefaultLength   int `mapstructure:"default_length"`
	DefaultMaxWrong int `mapstructure:"default_max_wrong"`
}

type DailyConfig struct {
	Salt     string `mapstructure:"daily_salt"`
	MinWrong int    `mapstructure:"daily_min_wrong"`
	MaxWrong int    `mapstructure:"daily_max_wrong"`
}

// Load resolves configuration from defaults, environment variables and, when
// path is set, a config file (any format viper understands). Environment
// variables use the upper-cased key, e.g. PORT or JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("words_file", "")
	v.SetDefault("db_path", "")
	v.SetDefault("jwt_secret", "dev_secret_change_me")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("cookie_name", "hangman_token")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("production", false)
	v.SetDefault("game_idle_ttl", 2*time.Hour)
	v.SetDefault("default_length", 5)
	v.SetDefault("default_max_wrong", 8)
	v.SetDefault("daily_salt", "local_dev_salt")
	v.SetDefault("daily_min_wrong", 5)
	v.SetDefault("daily_max_wrong", 8)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Game.DefaultLength < 1 {
		return fmt.Errorf("default_length must be at least 1")
	}
	if c.Game.DefaultMaxWrong < 0 {
		return fmt.Errorf("default_max_wrong must not be negative")
	}
	if c.Daily.MinWrong < 0 || c.Daily.MaxWrong < c.Daily.MinWrong {
		return fmt.Errorf("daily_min_wrong/daily_max_wrong must satisfy 0 <= min <= max")
	}
	if c.Production && c.JWTSecret == "dev_secret_change_me" {
		return fmt.Errorf("jwt_secret must be set in production")
	}
	return nil
}
