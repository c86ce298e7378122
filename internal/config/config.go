package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FirstPlayerHuman  = "human"
	FirstPlayerEngine = "engine"

	ColorAlways = "always"
	ColorNever  = "never"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel    string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	FirstPlayer string `yaml:"first-player" env:"FIRST_PLAYER" env-default:"human"`
	Color       string `yaml:"color" env:"COLOR" env-default:"always"`
	Redis       Redis  `yaml:"redis"`
}

// Redis - connection of the optional move book.
type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path when it exists and falls back to the environment otherwise.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.FirstPlayer {
	case FirstPlayerHuman, FirstPlayerEngine:
	default:
		return fmt.Errorf("%w: first-player %q", ErrInvalidConfig, that.FirstPlayer)
	}

	switch that.Color {
	case ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q", ErrInvalidConfig, that.Color)
	}

	if that.Redis.Enabled && that.Redis.Host == "" {
		return fmt.Errorf("%w: redis host is empty", ErrInvalidConfig)
	}

	return nil
}

func (that *Config) UseColor() bool {
	return that.Color == ColorAlways
}

func (that *Config) EngineFirst() bool {
	return that.FirstPlayer == FirstPlayerEngine
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
