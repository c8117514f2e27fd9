package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the engine's runtime tunables
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	AntiSnipeWindow time.Duration `mapstructure:"ANTI_SNIPE_WINDOW"`
	ExtensionMargin time.Duration `mapstructure:"EXTENSION_MARGIN"`
	SubmitTimeout   time.Duration `mapstructure:"SUBMIT_TIMEOUT"`
	SweepInterval   time.Duration `mapstructure:"SWEEP_INTERVAL"`
}

// LoadConfig reads configuration from an optional app.env file in path,
// falling back to environment variables and defaults.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("ANTI_SNIPE_WINDOW", "60s")
	viper.SetDefault("EXTENSION_MARGIN", "120s")
	viper.SetDefault("SUBMIT_TIMEOUT", "5s")
	viper.SetDefault("SWEEP_INTERVAL", "10s")

	viper.AutomaticEnv()

	if readErr := viper.ReadInConfig(); readErr != nil {
		if _, notFound := readErr.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, readErr
		}
	}
	err = viper.Unmarshal(&cfg)
	return
}
