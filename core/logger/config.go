package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error). Debug also enables
	// raw provider payload logging.
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (console, json).
	Format string `mapstructure:"format" default:"console"`
}

// IsDebug reports whether debug logging is enabled.
func (c Config) IsDebug() bool {
	return c.Level == "debug"
}
