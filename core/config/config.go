package config

import (
	"fmt"
	"reflect"
	"strings"

	"untis-notifier/core/database"
	"untis-notifier/core/kv"
	"untis-notifier/core/logger"
	"untis-notifier/core/scheduler"
	"untis-notifier/core/server"
	"untis-notifier/core/snapshot"
	"untis-notifier/core/storage"
	"untis-notifier/core/untis"
	"untis-notifier/feature/discord"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the optional HTTP API.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the SQL snapshot backend.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage snapshot backend.
	Storage storage.Config `mapstructure:"storage"`
	// Redis holds configuration for the redis snapshot backend.
	Redis kv.Config `mapstructure:"redis"`
	// Snapshot selects the snapshot backend.
	Snapshot snapshot.Config `mapstructure:"snapshot"`
	// Untis holds the WebUntis account.
	Untis untis.Config `mapstructure:"untis"`
	// Discord holds the webhook target.
	Discord discord.Config `mapstructure:"discord"`
	// Poll holds the scheduler settings.
	Poll scheduler.Config `mapstructure:"poll"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine (e.g. container deployments).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// UNTIS_USERNAME -> untis.username
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the settings every run mode needs.
func (c *Config) Validate() error {
	if err := c.Untis.Validate(); err != nil {
		return err
	}

	switch c.Snapshot.Backend {
	case snapshot.BackendDatabase, snapshot.BackendObject, snapshot.BackendRedis, snapshot.BackendMemory:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.Snapshot.Backend)
	}

	if c.Poll.Interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", c.Poll.Interval)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registered even when empty so AutomaticEnv picks the key up.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
