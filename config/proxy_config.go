package config

// ProxyConfig defines defaults applied to inbound proxy requests
type ProxyConfig struct {
	// DefaultInterval is used when the client does not supply an interval parameter
	DefaultInterval string `yaml:"default_interval"`

	// DefaultLimit is used when the client does not supply a limit parameter
	DefaultLimit string `yaml:"default_limit"`
}

// GetDefaultProxyConfig returns default proxy request parameters
func GetDefaultProxyConfig() ProxyConfig {
	return ProxyConfig{
		DefaultInterval: "4h",
		DefaultLimit:    "100",
	}
}
