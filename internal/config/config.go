package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeConsole = "console"
	ModeServer  = "server"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string  `yaml:"mode" env:"MODE" env-default:"console"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Console    Console `yaml:"console"`
}

type Console struct {
	Plain        bool   `yaml:"plain" env:"CONSOLE_PLAIN" env-default:"false"`
	XColor       string `yaml:"x-color" env:"CONSOLE_X_COLOR" env-default:"#E06C75"`
	OColor       string `yaml:"o-color" env:"CONSOLE_O_COLOR" env-default:"#61AFEF"`
	AIMovesFirst bool   `yaml:"ai-moves-first" env:"CONSOLE_AI_FIRST" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the yaml file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var ErrUnknownMode = errors.New("unknown mode")

func (that *Config) Validate() error {
	switch that.Mode {
	case ModeConsole, ModeServer:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}
}
