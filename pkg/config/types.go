// Package config provides configuration loading and validation for chatlens.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML. Every
// field has a working default; a config file is optional.
type Config struct {
	// SentinelAuthor labels system/notification entries that carry no
	// human author.
	SentinelAuthor string `yaml:"sentinel_author"`

	// StopwordsFile is a whitespace-separated word list excluded from
	// word-frequency tables. A missing file is not an error.
	StopwordsFile string `yaml:"stopwords_file,omitempty"`

	// MediaMarkers are the lowercase placeholder strings that mark
	// media messages in exports made without media.
	MediaMarkers []string `yaml:"media_markers,omitempty"`

	// TopAuthors is the leaderboard size.
	TopAuthors int `yaml:"top_authors"`

	// CommonWords is the word-frequency table size.
	CommonWords int `yaml:"common_words"`

	// TopEmoji is the emoji-frequency table size.
	TopEmoji int `yaml:"top_emoji"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnData fires only when the analysis produced records (default).
	WebhookTriggerOnData WebhookTrigger = "on_data"
	// WebhookTriggerAlways fires after every analysis.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending analysis reports.
type WebhookConfig struct {
	// Name identifies the webhook in logs and errors.
	Name string `yaml:"name,omitempty"`

	// URL is the endpoint to POST the report to.
	URL string `yaml:"url"`

	// Token is an optional bearer token. Supports ${VAR} expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger controls when the webhook fires (on_data, always, never).
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
