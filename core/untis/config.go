package untis

import (
	"fmt"
	"strings"
	"time"
)

// Config holds configuration for the WebUntis connection.
type Config struct {
	// URL is the school's WebUntis host, e.g. https://borys.webuntis.com.
	URL string `mapstructure:"url" default:""`
	// School is the school name used at login.
	School string `mapstructure:"school" default:""`
	// Username is the WebUntis login.
	Username string `mapstructure:"username" default:""`
	// Password is the WebUntis password.
	Password string `mapstructure:"password" default:""`
	// Client is the client identifier sent with authenticate.
	Client string `mapstructure:"client" default:"untis-notifier"`
	// RangeStart is the first day of the absence, homework and exam windows (YYYY-MM-DD).
	// Usually the start of the school year.
	RangeStart string `mapstructure:"range_start" default:""`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// BaseURL returns the host with scheme and without trailing slash.
func (c Config) BaseURL() string {
	u := strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RangeStartDate parses RangeStart. An empty value falls back to the first of
// September of the current school year.
func (c Config) RangeStartDate(now time.Time) (time.Time, error) {
	s := strings.TrimSpace(c.RangeStart)
	if s == "" {
		year := now.Year()
		if now.Month() < time.September {
			year--
		}
		return time.Date(year, time.September, 1, 0, 0, 0, 0, now.Location()), nil
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid range start %q, expected YYYY-MM-DD", c.RangeStart)
}

// Validate checks that the credentials are present.
func (c Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "url")
	}
	if c.School == "" {
		missing = append(missing, "school")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("untis config incomplete, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
