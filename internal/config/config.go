package config

import (
	"fmt"
	"log"

	"rummy-service/internal/service/agent"
	appErr "rummy-service/pkg/errors"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

type ServerConfig struct {
	Port   string `mapstructure:"port"`
	Mode   string `mapstructure:"mode"`   // debug, release
	APIKey string `mapstructure:"apiKey"` // guards simulation when set
}

// RedisConfig is optional; an empty Addr disables the analysis cache.
type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	CacheTTLSeconds int    `mapstructure:"cacheTTLSeconds"`
}

type SimulationConfig struct {
	Matches     int    `mapstructure:"matches"`
	Workers     int    `mapstructure:"workers"`
	MaxWorkers  int    `mapstructure:"maxWorkers"`
	MaxMatches  int    `mapstructure:"maxMatches"`
	TargetScore int    `mapstructure:"targetScore"`
	Seed        int64  `mapstructure:"seed"`
	Strategy    string `mapstructure:"strategy"`
	Opponent    string `mapstructure:"opponent"`
}

var GlobalConfig *Config

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cacheTTLSeconds", 600)
	v.SetDefault("simulation.matches", 100)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.maxWorkers", 64)
	v.SetDefault("simulation.maxMatches", 10000)
	v.SetDefault("simulation.targetScore", 200)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.strategy", string(agent.StrategyPlain))
	v.SetDefault("simulation.opponent", string(agent.StrategyPlain))
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a YAML file on top of the defaults. An empty path uses the
// defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return Decode(v)
}

func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Error loading config file, %s", err)
	}
	GlobalConfig = cfg
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error
	if c.Server.Port == "" {
		err = multierr.Append(err, fmt.Errorf("%w: server.port is empty", appErr.ErrInvalidConfig))
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		err = multierr.Append(err, fmt.Errorf("%w: server.mode %q", appErr.ErrInvalidConfig, c.Server.Mode))
	}
	if c.Redis.CacheTTLSeconds < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: redis.cacheTTLSeconds is negative", appErr.ErrInvalidConfig))
	}

	sim := c.Simulation
	if sim.MaxMatches <= 0 || sim.Matches <= 0 || sim.Matches > sim.MaxMatches {
		err = multierr.Append(err, fmt.Errorf("%w: simulation.matches must be between 1 and maxMatches", appErr.ErrInvalidConfig))
	}
	if sim.MaxWorkers <= 0 || sim.Workers <= 0 || sim.Workers > sim.MaxWorkers {
		err = multierr.Append(err, fmt.Errorf("%w: simulation.workers must be between 1 and maxWorkers", appErr.ErrInvalidConfig))
	}
	if sim.TargetScore <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: simulation.targetScore must be positive", appErr.ErrInvalidConfig))
	}
	for _, name := range []string{sim.Strategy, sim.Opponent} {
		if _, perr := agent.ParseStrategy(name); perr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %w", appErr.ErrInvalidConfig, perr))
		}
	}
	return err
}
