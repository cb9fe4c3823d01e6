package e2etest

import (
	"fmt"
	"os"

	"github.com/status-im/coinglass-proxy/config"
)

// loadTestConfig writes a temporary config pointing at the mock upstream
// and loads it the same way main does. Returns the config and its path.
func loadTestConfig(mockServerURL string) (*config.Config, string, error) {
	content := fmt.Sprintf(`
coinglass:
  api_key_file: "nonexistent_test_key.json"
  cache_ttl: 60s

rate_limit:
  requests_per_window: 5
  window: 60s

cache:
  go_cache:
    default_expiration: 1m
    cleanup_interval: 2m
    enabled: true

override_coinglass_url: "%s"
`, mockServerURL)

	tmpfile, err := os.CreateTemp("", "e2e-config-*.yaml")
	if err != nil {
		return nil, "", err
	}

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, "", err
	}
	if err := tmpfile.Close(); err != nil {
		os.Remove(tmpfile.Name())
		return nil, "", err
	}

	cfg, err := config.LoadConfig(tmpfile.Name())
	if err != nil {
		os.Remove(tmpfile.Name())
		return nil, "", err
	}

	return cfg, tmpfile.Name(), nil
}

// cleanupTestConfig removes the temporary config file
func cleanupTestConfig(path string) {
	os.Remove(path)
}
