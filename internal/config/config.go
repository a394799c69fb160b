package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Display    DisplayConfig    `mapstructure:"display"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	// RetryAttempts applies to reads only. Messages are never resent.
	RetryAttempts int `mapstructure:"retry_attempts" validate:"min=0,max=10"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type StorageConfig struct {
	// Driver selects the profile store: a YAML file or a SQLite key/value table.
	Driver           string `mapstructure:"driver" validate:"oneof=file sqlite"`
	StateDirectory   string `mapstructure:"state_directory" validate:"required"`
	ProfileNamespace string `mapstructure:"profile_namespace" validate:"required,namespace"`
	ExportDirectory  string `mapstructure:"export_directory" validate:"required"`
}

// SQLitePath is the database used by the sqlite driver.
func (c StorageConfig) SQLitePath() string {
	return filepath.Join(c.StateDirectory, "revisahub.db")
}

type DisplayConfig struct {
	Markdown bool `mapstructure:"markdown"`
	WordWrap int  `mapstructure:"word_wrap" validate:"min=20"`
}

type OnboardingConfig struct {
	Catalog string `mapstructure:"catalog" validate:"oneof=full minimal"`
}

// DefaultStateDirectory is where the profile is kept unless configured otherwise.
func DefaultStateDirectory() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".revisahub"
	}
	return filepath.Join(dir, "revisahub")
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
		v.AddConfigPath("$HOME/.config/revisahub")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.base_url", "http://localhost:8001/api")
	v.SetDefault("api.timeout_seconds", 60)
	v.SetDefault("api.retry_attempts", 0)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.state_directory", DefaultStateDirectory())
	v.SetDefault("storage.profile_namespace", "mindly_profile")
	v.SetDefault("storage.export_directory", filepath.Join("outputs", "sessions"))
	v.SetDefault("display.markdown", true)
	v.SetDefault("display.word_wrap", 80)
	v.SetDefault("onboarding.catalog", "full")

	if err := v.BindEnv("api.base_url", "REVISAHUB_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind REVISAHUB_API_URL environment variable: %w", err)
	}
	if err := v.BindEnv("storage.state_directory", "REVISAHUB_STATE_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind REVISAHUB_STATE_DIR environment variable: %w", err)
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

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
