package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Database Database `yaml:"database"`
}

type Database struct {
	Enabled bool   `yaml:"enabled" env:"DB_ENABLED" env-default:"false"`
	URL     string `yaml:"url" env:"DATABASE_URL" env-default:""`
}

// MustLoad reads the config file when present; the environment always
// overrides it.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			panic(fmt.Errorf("unable to load config file: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to read environment: %w", err))
	}

	return config
}
