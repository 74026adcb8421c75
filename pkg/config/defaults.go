package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/chatlens/pkg/stats"
)

// Default values for configuration.
const (
	DefaultSentinelAuthor = "group_notification"
	DefaultTopAuthors     = 5
	DefaultCommonWords    = 20
	DefaultTopEmoji       = 10
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvSentinelAuthor = "CHATLENS_SENTINEL_AUTHOR"
	EnvStopwordsFile  = "CHATLENS_STOPWORDS_FILE"
	EnvTopAuthors     = "CHATLENS_TOP_AUTHORS"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SentinelAuthor: DefaultSentinelAuthor,
		MediaMarkers:   stats.DefaultMediaMarkers(),
		TopAuthors:     DefaultTopAuthors,
		CommonWords:    DefaultCommonWords,
		TopEmoji:       DefaultTopEmoji,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sentinel := os.Getenv(EnvSentinelAuthor); sentinel != "" {
		c.SentinelAuthor = sentinel
	}
	if path := os.Getenv(EnvStopwordsFile); path != "" {
		c.StopwordsFile = path
	}
	if top := os.Getenv(EnvTopAuthors); top != "" {
		if n, err := strconv.Atoi(top); err == nil && n > 0 {
			c.TopAuthors = n
		}
	}
}
