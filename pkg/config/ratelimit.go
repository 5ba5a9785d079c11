package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"doc-genie/pkg/ratelimit"
)

// LoadRateLimitConfig loads the per-endpoint rate limiting policies.
//
// It reads the policy knobs from environment variables and returns a
// validated ratelimit.Config. Invalid values log a warning and fall back
// to safe defaults instead of failing.
//
// Environment variables:
//   - RATE_LIMIT_GUEST_GENERATE_MAX: Guest generation limit per window (default: 2)
//   - RATE_LIMIT_GUEST_GENERATE_WINDOW_HOURS: Guest generation window in hours (default: 24)
//   - RATE_LIMIT_GUEST_EDIT_MAX: Guest edit limit per window, per article (default: 3)
//   - RATE_LIMIT_GUEST_EDIT_WINDOW_HOURS: Guest edit window in hours (default: 24)
//   - RATE_LIMIT_AUTHENTICATED_GENERATE_MAX: Authenticated generation limit (default: 5)
//   - RATE_LIMIT_CONFIG_FILE: Optional YAML file overriding any endpoint policy
//
// The authenticated window is fixed at 24 hours and is not configurable
// through the environment; the YAML override file can change it.
func LoadRateLimitConfig() (ratelimit.Config, error) {
	guestGenerateMax := positiveEnvInt("RATE_LIMIT_GUEST_GENERATE_MAX", 2)
	guestGenerateWindow := windowHours("RATE_LIMIT_GUEST_GENERATE_WINDOW_HOURS", 24)
	guestEditMax := positiveEnvInt("RATE_LIMIT_GUEST_EDIT_MAX", 3)
	guestEditWindow := windowHours("RATE_LIMIT_GUEST_EDIT_WINDOW_HOURS", 24)
	authGenerateMax := positiveEnvInt("RATE_LIMIT_AUTHENTICATED_GENERATE_MAX", 5)

	cfg := ratelimit.Config{
		Endpoints: map[string]ratelimit.Policy{
			ratelimit.EndpointGenerate: {
				MaxRequests: guestGenerateMax,
				Window:      guestGenerateWindow,
			},
			ratelimit.EndpointEdit: {
				MaxRequests: guestEditMax,
				Window:      guestEditWindow,
			},
			ratelimit.EndpointAuthenticated: {
				MaxRequests: authGenerateMax,
				Window:      24 * time.Hour,
			},
		},
	}

	if path := os.Getenv("RATE_LIMIT_CONFIG_FILE"); path != "" {
		if err := applyPolicyFile(&cfg, path); err != nil {
			return ratelimit.Config{}, fmt.Errorf("load rate limit policy file: %w", err)
		}
	}

	return cfg, nil
}

// policyFile is the YAML shape of the optional policy override file.
//
// Example:
//
//	endpoints:
//	  generate:
//	    max_requests: 10
//	    window: 12h
type policyFile struct {
	Endpoints map[string]struct {
		MaxRequests int           `yaml:"max_requests"`
		Window      time.Duration `yaml:"window"`
	} `yaml:"endpoints"`
}

// applyPolicyFile overlays policies from a YAML file onto cfg.
// Unknown endpoint names in the file are added as new policies.
func applyPolicyFile(cfg *ratelimit.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for endpoint, policy := range file.Endpoints {
		if policy.MaxRequests <= 0 {
			return fmt.Errorf("endpoint %q: max_requests must be positive, got %d",
				endpoint, policy.MaxRequests)
		}
		if err := ValidatePositiveDuration(policy.Window); err != nil {
			return fmt.Errorf("endpoint %q: %w", endpoint, err)
		}
		cfg.Endpoints[endpoint] = ratelimit.Policy{
			MaxRequests: policy.MaxRequests,
			Window:      policy.Window,
		}
		slog.Info("rate limit policy overridden from file",
			slog.String("endpoint", endpoint),
			slog.Int("max_requests", policy.MaxRequests),
			slog.String("window", policy.Window.String()))
	}

	return nil
}

// positiveEnvInt reads an integer env var, rejecting non-positive values.
func positiveEnvInt(key string, defaultValue int) int {
	value := GetEnvInt(key, defaultValue)
	if value <= 0 {
		slog.Warn("non-positive value for environment variable, using default",
			slog.String("key", key),
			slog.Int("value", value),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return value
}

// windowHours reads an hour-count env var and converts it to a duration.
func windowHours(key string, defaultHours int) time.Duration {
	hours := positiveEnvInt(key, defaultHours)
	return time.Duration(hours) * time.Hour
}
