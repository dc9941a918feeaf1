package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Features FeaturesConfig `mapstructure:"features"`
}

type AppConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// TrustProxy logs the forwarded client address instead of the socket peer.
	TrustProxy      bool          `mapstructure:"trust_proxy"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// FeaturesConfig points at the request logging feature file. An empty Path
// means built-in defaults plus REQLOG_* environment overrides.
type FeaturesConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

var validate = validator.New()

func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.shutdown_timeout", 5*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("app.trust_proxy", false)
	v.SetDefault("features.watch", false)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	// LOGGING_LEVEL -> logging.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("app.port", "APP_PORT")
	_ = v.BindEnv("app.trust_proxy", "APP_TRUST_PROXY")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("features.path", "FEATURES_PATH")
	_ = v.BindEnv("features.watch", "FEATURES_WATCH")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Features.Watch && c.Features.Path == "" {
		return fmt.Errorf("FEATURES_PATH is required when FEATURES_WATCH is set")
	}
	return nil
}
