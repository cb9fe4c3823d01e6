package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/status-im/coinglass-proxy/cache"
)

type Config struct {
	Coinglass CoinglassFetcher `yaml:"coinglass"`
	Proxy     ProxyConfig      `yaml:"proxy"`
	RateLimit RateLimitConfig  `yaml:"rate_limit"`
	Cache     cache.Config     `yaml:"cache"`
	APIKey    *APIKeySettings

	OverrideCoinglassURL string `yaml:"override_coinglass_url"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Config{
		Coinglass: GetDefaultCoinglassConfig(),
		Proxy:     GetDefaultProxyConfig(),
		RateLimit: GetDefaultRateLimitConfig(),
		Cache:     cache.DefaultCacheConfig(),
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()

	apiKey, err := LoadAPIKey(config.Coinglass.APIKeyFile)
	if err != nil {
		log.Printf("Warning: Error loading Coinglass API key from %s: %v. Using upstream API without authentication.",
			config.Coinglass.APIKeyFile, err)
		config.APIKey = &APIKeySettings{}
	} else {
		config.APIKey = apiKey
	}

	return &config, nil
}

// applyDefaults restores defaults for fields the YAML file set back to zero values
func (c *Config) applyDefaults() {
	defaults := GetDefaultCoinglassConfig()
	if c.Coinglass.APIKeyFile == "" {
		c.Coinglass.APIKeyFile = defaults.APIKeyFile
	}
	if c.Coinglass.CacheTTL <= 0 {
		c.Coinglass.CacheTTL = defaults.CacheTTL
	}

	proxyDefaults := GetDefaultProxyConfig()
	if c.Proxy.DefaultInterval == "" {
		c.Proxy.DefaultInterval = proxyDefaults.DefaultInterval
	}
	if c.Proxy.DefaultLimit == "" {
		c.Proxy.DefaultLimit = proxyDefaults.DefaultLimit
	}

	rlDefaults := GetDefaultRateLimitConfig()
	if c.RateLimit.RequestsPerWindow <= 0 {
		c.RateLimit.RequestsPerWindow = rlDefaults.RequestsPerWindow
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = rlDefaults.Window
	}
	if c.RateLimit.EvictionInterval <= 0 {
		c.RateLimit.EvictionInterval = rlDefaults.EvictionInterval
	}
	if c.RateLimit.EvictionAge <= 0 {
		c.RateLimit.EvictionAge = rlDefaults.EvictionAge
	}
}
