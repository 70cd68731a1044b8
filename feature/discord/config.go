package discord

import "time"

// Config holds configuration for the Discord webhook.
type Config struct {
	// WebhookURL is the channel webhook. Empty disables delivery.
	WebhookURL string `mapstructure:"webhook_url" default:""`
	// UserID is mentioned in every message when set.
	UserID string `mapstructure:"user_id" default:""`
	// TimeoutSeconds bounds a single webhook call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Timeout returns the webhook timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
