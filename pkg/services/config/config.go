package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL      string `mapstructure:"base_url" validate:"required"`
	Token        string `mapstructure:"token" validate:"required"`
	Company      string `mapstructure:"company" validate:"required"`
	LookbackDays int    `mapstructure:"lookback_days"`
}

func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse erp config: %w", err)
	}
	return &cfg, nil
}
