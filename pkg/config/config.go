package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and normalizes it.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.SentinelAuthor) == "" {
		return errors.New("sentinel_author: must not be blank")
	}

	if cfg.TopAuthors < 1 {
		return fmt.Errorf("top_authors: must be >= 1, got %d", cfg.TopAuthors)
	}
	if cfg.CommonWords < 1 {
		return fmt.Errorf("common_words: must be >= 1, got %d", cfg.CommonWords)
	}
	if cfg.TopEmoji < 1 {
		return fmt.Errorf("top_emoji: must be >= 1, got %d", cfg.TopEmoji)
	}

	// Markers are matched against lowercased text; normalize here so a
	// config with mixed-case markers still matches.
	for i, marker := range cfg.MediaMarkers {
		trimmed := strings.ToLower(strings.TrimSpace(marker))
		if trimmed == "" {
			return fmt.Errorf("media_markers[%d]: must not be blank", i)
		}
		cfg.MediaMarkers[i] = trimmed
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	// Expand environment variables in token
	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnData, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_data, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnData
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}

	return s
}
