// internal/enrichment/config.go
package enrichment

import "client-lookup-bot/internal/common/config"

// Config carries the three capability backend endpoints. Timeouts stay in
// config milliseconds and are converted at the call site.
type Config struct {
	Status config.BackendConfig
	Credit config.BackendConfig
	Trades config.BackendConfig
}

func LoadConfig(backends config.BackendsConfig) *Config {
	return &Config{
		Status: backends.Status,
		Credit: backends.Credit,
		Trades: backends.Trades,
	}
}
