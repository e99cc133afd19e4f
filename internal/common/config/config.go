// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Backends  BackendsConfig  `mapstructure:"backends"`
	Dedup     DedupConfig     `mapstructure:"dedup"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// GatewayConfig holds the chat transport bridge endpoints. Inbound events
// arrive on the shared HTTP server; outbound replies go to the webhook.
type GatewayConfig struct {
	ReplyWebhookURL string `mapstructure:"reply_webhook_url"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
}

// DirectoryConfig holds settings for the client directory source.
type DirectoryConfig struct {
	CSVPath string `mapstructure:"csv_path"`
	// SampleFallback installs a built-in sample set when the very first load
	// fails. Reload failures always keep the prior snapshot regardless.
	SampleFallback bool `mapstructure:"sample_fallback"`
}

// BackendsConfig holds the enrichment and document backend endpoints.
type BackendsConfig struct {
	Status   BackendConfig `mapstructure:"status"`
	Credit   BackendConfig `mapstructure:"credit"`
	Trades   BackendConfig `mapstructure:"trades"`
	Document BackendConfig `mapstructure:"document"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// DedupConfig bounds the processed-message-id set.
type DedupConfig struct {
	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	TTL           int    `mapstructure:"ttl"` // seconds
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// URLFor joins a backend base URL with a path-parameterized resource.
func (b BackendConfig) URLFor(resource, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.BaseURL, resource, id)
}
