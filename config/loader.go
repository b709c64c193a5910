package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// overrides are environment settings that take precedence over every
// service entry in the file.
type overrides struct {
	CacheDir string        `env:"PARRY_CACHE_DIR"`
	Timeout  time.Duration `env:"PARRY_TIMEOUT"`
}

// Load reads a YAML configuration file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var ov overrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("error reading environment overrides: %w", err)
	}
	applyOverrides(&cfg, ov)

	if errs := ValidateConfig(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", errs[0])
	}
	return &cfg, nil
}

func applyOverrides(cfg *Config, ov overrides) {
	for name, svc := range cfg.Services {
		if ov.CacheDir != "" {
			svc.CacheDir = ov.CacheDir
		}
		if ov.Timeout > 0 {
			svc.Timeout = Duration(ov.Timeout)
		}
		cfg.Services[name] = svc
	}
}
