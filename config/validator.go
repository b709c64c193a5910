package config

import (
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration and returns a slice of
// validation errors. An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Services) == 0 {
		errors = append(errors, ValidationError{
			Path:    "services",
			Message: "at least one service is required",
		})
	}

	for name, svc := range config.Services {
		if name == "" {
			errors = append(errors, ValidationError{
				Path:    "services",
				Message: "service name cannot be empty",
			})
		}

		if svc.BaseURL == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("services.%s.baseUrl", name),
				Message: "baseUrl is required",
			})
		} else if u, err := url.Parse(svc.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("services.%s.baseUrl", name),
				Message: fmt.Sprintf("invalid baseUrl: %s", svc.BaseURL),
			})
		}

		if svc.Timeout < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("services.%s.timeout", name),
				Message: "timeout cannot be negative",
			})
		}

		if svc.RateLimit < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("services.%s.rateLimit", name),
				Message: "rateLimit cannot be negative",
			})
		}

		if svc.CacheTTL < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("services.%s.cacheTtl", name),
				Message: "cacheTtl cannot be negative",
			})
		}
	}

	return errors
}
