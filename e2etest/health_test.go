package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchHealth(t *testing.T, env *TestEnv) map[string]interface{} {
	t.Helper()

	resp, err := http.Get(env.ServerBaseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &status))
	return status
}

func TestHealth_ReportsServiceStates(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	status := fetchHealth(t, env)
	assert.Equal(t, "ok", status["status"])

	services, ok := status["services"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "up", services["cache"])
	assert.Equal(t, "up", services["rate_limiter"])
	// No upstream call has happened yet
	assert.Equal(t, "unknown", services["coinglass"])
}

func TestHealth_CoinglassUpAfterSuccessfulFetch(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	resp, _ := proxyGet(t, env, "?endpoint=/futures/open-interest/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := fetchHealth(t, env)
	services, ok := status["services"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "up", services["coinglass"])
}
