// Package config loads and validates the application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Store     StoreConfig     `mapstructure:"store"`
	PostgREST PostgRESTConfig `mapstructure:"postgrest"`
	Folders   FoldersConfig   `mapstructure:"folders"`
	Log       LogConfig       `mapstructure:"log"`
	CLI       CLIConfig       `mapstructure:"cli"`
}

type ServerConfig struct {
	Port                int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS                CORSConfig `mapstructure:"cors"`
	ReadTimeoutSeconds  int        `mapstructure:"read_timeout_seconds" validate:"min=0"`
	WriteTimeoutSeconds int        `mapstructure:"write_timeout_seconds" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=postgres mysql sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	SSLMode         string            `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectRetries  uint              `mapstructure:"connect_retries"`
}

// StoreConfig selects where folders are persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=sql postgrest"`
}

// PostgRESTConfig configures the hosted REST backend used when store.backend is postgrest.
type PostgRESTConfig struct {
	URL           string `mapstructure:"url" validate:"omitempty,url"`
	APIKey        string `mapstructure:"api_key"`
	RetryAttempts uint   `mapstructure:"retry_attempts" validate:"min=1,max=10"`
}

type FoldersConfig struct {
	AtomicReorder bool `mapstructure:"atomic_reorder"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// CLIConfig holds defaults for the command line client.
type CLIConfig struct {
	UserID string `mapstructure:"user_id"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studycards")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	// A missing .env is fine; values may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "studycards")
	v.SetDefault("database.username", "studycards")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "studycards.db")
	v.SetDefault("database.connect_retries", 5)
	v.SetDefault("store.backend", "sql")
	v.SetDefault("postgrest.retry_attempts", 3)
	v.SetDefault("folders.atomic_reorder", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	envBindings := []struct {
		key string
		env string
	}{
		{"database.password", "DB_PASSWORD"},
		{"postgrest.url", "POSTGREST_URL"},
		{"postgrest.api_key", "POSTGREST_API_KEY"},
		{"cli.user_id", "STUDYCARDS_USER_ID"},
		{"log.level", "LOG_LEVEL"},
	}
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	var errorMsgs []string
	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
	}
	if cfg.Store.Backend == "postgrest" && cfg.PostgREST.URL == "" {
		errorMsgs = append(errorMsgs, "postgrest.url is required when store.backend is postgrest")
	}
	if len(errorMsgs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
