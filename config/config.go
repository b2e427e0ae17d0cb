package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Airtable      AirtableConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// AirtableConfig holds credentials for the external record store.
// Both PersonalAccessToken and BaseID must be present for the store to be
// used; otherwise the API runs in log-only mode and submissions are not
// forwarded anywhere. That is a supported configuration, not an error.
type AirtableConfig struct {
	PersonalAccessToken string
	BaseID              string
	ContactTable        string
	SubscribersTable    string
	TimeoutSeconds      int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	SubscriberTTLSeconds int // TTL for the known-subscriber duplicate cache
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://cloudnotes.dev")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://cloudnotes.dev,https://www.cloudnotes.dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("AIRTABLE_CONTACT_TABLE", "Contact Messages")
	v.SetDefault("AIRTABLE_SUBSCRIBERS_TABLE", "Newsletter Subscribers")
	v.SetDefault("AIRTABLE_TIMEOUT_SECONDS", 10)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "cloudnotes-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "cloudnotes")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "cloudnotes-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("SUBSCRIBER_CACHE_TTL", 300) // 5 minutes in seconds

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Airtable: AirtableConfig{
			PersonalAccessToken: v.GetString("AIRTABLE_PERSONAL_ACCESS_TOKEN"),
			BaseID:              v.GetString("AIRTABLE_BASE_ID"),
			ContactTable:        v.GetString("AIRTABLE_CONTACT_TABLE"),
			SubscribersTable:    v.GetString("AIRTABLE_SUBSCRIBERS_TABLE"),
			TimeoutSeconds:      v.GetInt("AIRTABLE_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			SubscriberTTLSeconds: v.GetInt("SUBSCRIBER_CACHE_TTL"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Airtable credentials are optional as a pair: a missing pair switches the
	// record store into log-only mode. A half-configured pair is almost always
	// a deployment mistake, so reject it.
	if c.Airtable.PersonalAccessToken != "" && c.Airtable.BaseID == "" {
		return fmt.Errorf("AIRTABLE_BASE_ID is required when AIRTABLE_PERSONAL_ACCESS_TOKEN is set")
	}
	if c.Airtable.PersonalAccessToken == "" && c.Airtable.BaseID != "" {
		return fmt.Errorf("AIRTABLE_PERSONAL_ACCESS_TOKEN is required when AIRTABLE_BASE_ID is set")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// StoreEnabled reports whether the external record store credentials are present.
func (c *AirtableConfig) StoreEnabled() bool {
	return c.PersonalAccessToken != "" && c.BaseID != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
