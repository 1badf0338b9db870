package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`
	ServerPort string `mapstructure:"SERVER_PORT"`
}

// Load reads an optional .env file from dir, then SALES_-prefixed
// environment variables, which take precedence.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("SALES")
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SERVER_PORT", "8080")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
