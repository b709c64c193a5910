// Package config provides loading and validation of parry configuration
// files: a registry of backend services keyed by ServiceKey, with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceKey is an opaque identifier namespacing configuration entries for
// one backend service. Equality is by wrapped string.
type ServiceKey struct {
	name string
}

// Key wraps a service name.
func Key(name string) ServiceKey {
	return ServiceKey{name: name}
}

// String returns the wrapped name.
func (k ServiceKey) String() string {
	return k.name
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Service is the configuration for one backend.
type Service struct {
	BaseURL   string            `yaml:"baseUrl"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Timeout   Duration          `yaml:"timeout,omitempty"`
	RateLimit float64           `yaml:"rateLimit,omitempty"`
	CacheDir  string            `yaml:"cacheDir,omitempty"`
	CacheTTL  Duration          `yaml:"cacheTtl,omitempty"`
}

// Config is the top-level configuration: a registry of services.
type Config struct {
	Services map[string]Service `yaml:"services"`
}

// Service looks up the configuration entry for a key.
func (c *Config) Service(key ServiceKey) (Service, bool) {
	svc, ok := c.Services[key.String()]
	return svc, ok
}
