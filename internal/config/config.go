package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AccessToken         string `json:"accessToken"`
	PollIntervalSeconds int    `json:"pollIntervalSeconds"`
	DBPath              string `json:"dbPath"`
	LogLevel            string `json:"logLevel"`
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func ReadConfig() (*Config, error) {
	viper.SetConfigName("config")                    // name of config file (without extension)
	viper.SetConfigType("json")                      // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("/etc/lifxbridge/")          // path to look for the config file in
	viper.AddConfigPath("$HOME/.config/lifxbridge/") // call multiple times to add many search paths
	viper.AddConfigPath(".")                         // optionally look for config in the working directory

	viper.SetDefault("pollIntervalSeconds", 30)
	viper.SetDefault("dbPath", "lifxbridge.db")
	viper.SetDefault("logLevel", "info")

	// the token can be supplied outside the config file
	_ = viper.BindEnv("accessToken", "LIFXBRIDGE_ACCESS_TOKEN")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.AccessToken == "" {
		return nil, errors.New("accessToken is required (config file or LIFXBRIDGE_ACCESS_TOKEN)")
	}

	return &cfg, nil
}
