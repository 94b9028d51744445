package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/vidamais/portal-api/internal/email"
	"github.com/vidamais/portal-api/pkg/logger"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   logger.Config   `mapstructure:"logging"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	SMTP      email.Config    `mapstructure:"smtp"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Overrides EnvOverrides    `mapstructure:"-"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	Expiry      time.Duration `mapstructure:"expiry"`
	Issuer      string        `mapstructure:"issuer"`
	ClaimsCache time.Duration `mapstructure:"claims_cache"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EnvOverrides are deployment-level settings taken from the environment.
type EnvOverrides struct {
	Port      int    `envconfig:"PORT"`
	JWTSecret string `envconfig:"JWT_SECRET"`
	SMTPHost  string `envconfig:"SMTP_HOST"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var overrides EnvOverrides
	if err := envconfig.Process("portal", &overrides); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	if overrides.Port != 0 {
		config.Server.Port = overrides.Port
	}
	if overrides.JWTSecret != "" {
		config.JWT.Secret = overrides.JWTSecret
	}
	if overrides.SMTPHost != "" {
		config.SMTP.Host = overrides.SMTPHost
	}
	config.Overrides = overrides

	return &config, nil
}
