package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process configuration, parsed from the environment.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	PublicURL      string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	SandboxTimeout time.Duration `env:"SANDBOX_TIMEOUT" envDefault:"2s"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
