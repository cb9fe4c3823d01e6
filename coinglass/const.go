package coinglass

import (
	"github.com/status-im/coinglass-proxy/config"
)

const (
	// Base URL for the Coinglass open API
	COINGLASS_API_URL = "https://open-api-v4.coinglass.com/api"

	// Header carrying the API key credential
	API_KEY_HEADER = "CG-API-KEY"
)

// GetApiBaseUrl returns the upstream base URL, honoring a configured override
func GetApiBaseUrl(cfg *config.Config) string {
	if cfg != nil && cfg.OverrideCoinglassURL != "" {
		return cfg.OverrideCoinglassURL
	}
	return COINGLASS_API_URL
}
