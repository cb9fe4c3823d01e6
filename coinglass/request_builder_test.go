package coinglass

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		expected EndpointFamily
	}{
		{
			name:     "liquidation history",
			endpoint: "/futures/liquidation/history",
			expected: FamilyLiquidationHistory,
		},
		{
			name:     "funding rate history",
			endpoint: "/futures/funding-rate/history",
			expected: FamilyFundingRateHistory,
		},
		{
			name:     "long short ratio",
			endpoint: "/futures/long-short-ratio/history",
			expected: FamilyLongShortRatio,
		},
		{
			name:     "long short ratio global account",
			endpoint: "/futures/long-short-ratio/global-account",
			expected: FamilyLongShortRatio,
		},
		{
			name:     "unknown endpoint",
			endpoint: "/futures/open-interest/history",
			expected: FamilyDefault,
		},
		{
			name:     "liquidation takes precedence over long-short substring",
			endpoint: "/long-short-ratio/liquidation/history",
			expected: FamilyLiquidationHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyEndpoint(tt.endpoint))
		})
	}
}

func buildParams(t *testing.T, req ProxyRequest) url.Values {
	rb := NewProxyRequestBuilder("https://example.com/api", req)

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)
	return u.Query()
}

func TestProxyRequestBuilder_LiquidationHistory(t *testing.T) {
	params := buildParams(t, ProxyRequest{
		Endpoint: "/futures/liquidation/history",
		Symbol:   "btc",
		Interval: "4h",
		Limit:    "100",
	})

	assert.Equal(t, "BTCUSDT", params.Get("instrument"))
	assert.Equal(t, "BTC", params.Get("symbol"))
	assert.Equal(t, "binance", params.Get("exchange"))
	assert.Equal(t, "4h", params.Get("interval"))
	assert.False(t, params.Has("limit"), "limit must never be forwarded for liquidation history")
}

func TestProxyRequestBuilder_LiquidationHistoryWithoutSymbol(t *testing.T) {
	params := buildParams(t, ProxyRequest{
		Endpoint: "/futures/liquidation/history",
		Interval: "1h",
	})

	assert.False(t, params.Has("instrument"))
	assert.False(t, params.Has("symbol"))
	assert.Equal(t, "binance", params.Get("exchange"))
	assert.Equal(t, "1h", params.Get("interval"))
}

func TestProxyRequestBuilder_FundingRateHistory(t *testing.T) {
	params := buildParams(t, ProxyRequest{
		Endpoint: "/futures/funding-rate/history",
		Symbol:   "eth",
		Interval: "8h",
		Limit:    "50",
	})

	assert.Equal(t, "ETH", params.Get("symbol"))
	assert.Equal(t, "binance", params.Get("exchange"))
	assert.Equal(t, "8h", params.Get("interval"))
	assert.False(t, params.Has("instrument"))
	assert.False(t, params.Has("limit"))
}

func TestProxyRequestBuilder_LongShortRatio(t *testing.T) {
	t.Run("global-account drops interval", func(t *testing.T) {
		params := buildParams(t, ProxyRequest{
			Endpoint: "/futures/long-short-ratio/global-account",
			Symbol:   "btc",
			Interval: "4h",
		})

		assert.Equal(t, "BTC", params.Get("symbol"))
		assert.False(t, params.Has("interval"), "global-account rejects an interval parameter upstream")
	})

	t.Run("other sub-endpoints forward interval", func(t *testing.T) {
		params := buildParams(t, ProxyRequest{
			Endpoint: "/futures/long-short-ratio/top-accounts",
			Symbol:   "btc",
			Interval: "4h",
		})

		assert.Equal(t, "BTC", params.Get("symbol"))
		assert.Equal(t, "4h", params.Get("interval"))
	})
}

func TestProxyRequestBuilder_DefaultFamily(t *testing.T) {
	params := buildParams(t, ProxyRequest{
		Endpoint: "/futures/open-interest/history",
		Symbol:   "sol",
		Interval: "4h",
		Limit:    "100",
	})

	assert.Equal(t, "SOL", params.Get("symbol"))
	assert.Equal(t, "4h", params.Get("interval"))
	assert.Equal(t, "100", params.Get("limit"))
	assert.False(t, params.Has("exchange"))
}

func TestProxyRequestBuilder_EmptyValuesOmitted(t *testing.T) {
	rb := NewProxyRequestBuilder("https://example.com/api", ProxyRequest{
		Endpoint: "/futures/open-interest/history",
	})

	assert.Equal(t, "https://example.com/api/futures/open-interest/history", rb.BuildURL())
}

func TestRequestBuilder_ParamOrderPreserved(t *testing.T) {
	rb := NewRequestBuilder("https://example.com", "/path").
		With("zeta", "1").
		With("alpha", "2").
		With("mid", "3")

	u := rb.BuildURL()
	assert.Equal(t, "https://example.com/path?zeta=1&alpha=2&mid=3", u)
}

func TestRequestBuilder_Build(t *testing.T) {
	req, err := NewRequestBuilder("https://example.com/api", "/futures/open-interest/history").
		With("symbol", "BTC").
		WithApiKey("test-key").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "test-key", req.Header.Get(API_KEY_HEADER))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "Mozilla/5.0"))
}

func TestRequestBuilder_NoApiKeyHeaderWhenEmpty(t *testing.T) {
	req, err := NewRequestBuilder("https://example.com", "/path").Build()
	require.NoError(t, err)

	assert.Equal(t, "", req.Header.Get(API_KEY_HEADER))
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		path     string
		expected string
	}{
		{
			name:     "trailing slash on base",
			baseURL:  "https://example.com/",
			path:     "/api/data",
			expected: "https://example.com/api/data",
		},
		{
			name:     "no slashes",
			baseURL:  "https://example.com",
			path:     "api/data",
			expected: "https://example.com/api/data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildURL(tt.baseURL, tt.path))
		})
	}
}
