package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/mediagenda/booking-api/internal/notification"
)

type Config struct {
	Server ServerConfig
	SMTP   notification.SMTPConfig
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	TimeoutSeconds int      `mapstructure:"timeoutSeconds"`
	RateLimitRPS   float64  `mapstructure:"rateLimitRps"`
	RateLimitBurst int      `mapstructure:"rateLimitBurst"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// LoadConfig reads config.yaml (from . or ./config) via viper, then the SMTP
// section from SMTP_* environment variables.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rateLimitRps", 50)
	viper.SetDefault("server.rateLimitBurst", 100)
	viper.SetDefault("server.allowedOrigins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		// A missing file falls back to defaults; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("smtp", &config.SMTP); err != nil {
		return nil, fmt.Errorf("failed to read SMTP config: %w", err)
	}

	return &config, nil
}
