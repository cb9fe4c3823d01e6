package config

import (
	"time"
)

// CoinglassFetcher defines configuration for the Coinglass upstream client
type CoinglassFetcher struct {
	// APIKeyFile is a path to a JSON file containing the Coinglass API key
	APIKeyFile string `yaml:"api_key_file"`

	// CacheTTL is how long a successful upstream response is served from cache.
	// This is also the s-maxage window advertised to downstream caches.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// GetDefaultCoinglassConfig returns default configuration for the Coinglass client
func GetDefaultCoinglassConfig() CoinglassFetcher {
	return CoinglassFetcher{
		APIKeyFile: "coinglass_api_key.json",
		CacheTTL:   60 * time.Second,
	}
}
