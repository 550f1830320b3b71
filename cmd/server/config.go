package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/credlens/credlens/internal/scoring"
	"github.com/spf13/viper"
)

// ServerConfig is everything the HTTP surface needs at startup. The scoring
// engine itself reads no environment or files; role-table extensions are
// loaded here and handed to the pipeline as plain data.
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	LogLevel    string   `mapstructure:"log_level"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int `mapstructure:"rate_limit_burst"`

	EnableHSTS bool `mapstructure:"enable_hsts"`

	// RolesFile optionally points at a YAML/JSON file whose entries extend
	// or override the built-in role knowledge tables.
	RolesFile string `mapstructure:"roles_file"`
}

// LoadServerConfig reads configuration from the environment (CREDLENS_ prefix)
// and, when present, from an optional config file. Environment wins.
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("CREDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("credlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
			// No config file is fine; env and defaults carry the day.
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("cache_ttl", 15*time.Minute)
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("rate_limit_per_minute", 60)
	v.SetDefault("rate_limit_burst", 2)
	v.SetDefault("enable_hsts", false)
	v.SetDefault("roles_file", "")
}

// SlogLevel maps the configured level string onto slog.
func (c *ServerConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// LoadKnowledgeBase returns the built-in role tables, merged with the entries
// from RolesFile when one is configured. File entries replace same-named roles
// wholesale; adding a role is a data change, not a code change.
func (c *ServerConfig) LoadKnowledgeBase() (scoring.KnowledgeBase, error) {
	kb := scoring.DefaultKnowledgeBase()
	if c.RolesFile == "" {
		return kb, nil
	}

	v := viper.New()
	v.SetConfigFile(c.RolesFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading roles file %s: %w", c.RolesFile, err)
	}

	extra := make(map[string]scoring.RoleKnowledge)
	if err := v.Unmarshal(&extra); err != nil {
		return nil, fmt.Errorf("parsing roles file %s: %w", c.RolesFile, err)
	}

	for role, knowledge := range extra {
		kb[strings.ToLower(strings.TrimSpace(role))] = knowledge
	}
	return kb, nil
}
