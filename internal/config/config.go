package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7000"`
	Redis      Redis  `yaml:"redis"`
	Board      Board  `yaml:"board"`
	Oracle     Oracle `yaml:"oracle"`
	TUI        TUI    `yaml:"tui"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Board bounds the dimensions a game may be started with.
type Board struct {
	MinRows int `yaml:"min-rows" env:"BOARD_MIN_ROWS" env-default:"11"`
	MinCols int `yaml:"min-cols" env:"BOARD_MIN_COLS" env-default:"11"`
	MaxRows int `yaml:"max-rows" env:"BOARD_MAX_ROWS" env-default:"50"`
	MaxCols int `yaml:"max-cols" env:"BOARD_MAX_COLS" env-default:"50"`
}

type Oracle struct {
	// RulesPath overrides the embedded rule file when set.
	RulesPath         string `yaml:"rules-path" env:"ORACLE_RULES_PATH"`
	DefaultDifficulty string `yaml:"default-difficulty" env:"ORACLE_DEFAULT_DIFFICULTY" env-default:"easy"`
}

type TUI struct {
	LogPath string `yaml:"log-path" env:"TUI_LOG_PATH" env-default:"tictactoe.log"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the yaml file at path, environment variables take precedence.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
