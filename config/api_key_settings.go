package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// APIKeySettings holds the Coinglass API key credential
type APIKeySettings struct {
	Key string `json:"api_key"`
}

// LoadAPIKey loads the Coinglass API key from a JSON file.
// The COINGLASS_API_KEY environment variable takes precedence over the file
// so deployments can inject the credential without a mounted secret.
func LoadAPIKey(path string) (*APIKeySettings, error) {
	if key := os.Getenv("COINGLASS_API_KEY"); key != "" {
		return &APIKeySettings{Key: key}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings APIKeySettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("error parsing API key file: %v", err)
	}

	if settings.Key == "" {
		return nil, fmt.Errorf("API key file %s contains no api_key", path)
	}

	return &settings, nil
}
