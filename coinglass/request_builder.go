package coinglass

import (
	"net/http"
	"net/url"
	"strings"
)

// EndpointFamily identifies which upstream parameter rules apply to a request
type EndpointFamily int

const (
	// FamilyDefault forwards symbol, interval and limit as-is
	FamilyDefault EndpointFamily = iota
	// FamilyLiquidationHistory requires instrument/exchange params, no limit
	FamilyLiquidationHistory
	// FamilyFundingRateHistory requires the exchange param
	FamilyFundingRateHistory
	// FamilyLongShortRatio drops the interval for global-account sub-endpoints
	FamilyLongShortRatio
)

// ClassifyEndpoint maps an endpoint path to its parameter family.
// Families are not mutually exclusive by substring alone, so the match
// order is fixed: liquidation, funding-rate, long-short-ratio, default.
func ClassifyEndpoint(endpoint string) EndpointFamily {
	switch {
	case strings.Contains(endpoint, "/liquidation/history"):
		return FamilyLiquidationHistory
	case strings.Contains(endpoint, "/funding-rate/history"):
		return FamilyFundingRateHistory
	case strings.Contains(endpoint, "/long-short-ratio"):
		return FamilyLongShortRatio
	default:
		return FamilyDefault
	}
}

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

type param struct {
	key   string
	value string
}

// RequestBuilder implements the Builder pattern for Coinglass API requests.
// Query parameters keep their insertion order.
type RequestBuilder struct {
	baseURL    string
	apiPath    string
	httpMethod string

	params []param

	apiKey string

	userAgent string
	headers   map[string]string
}

// NewRequestBuilder creates a new base request builder for Coinglass endpoints
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:    baseURL,
		apiPath:    apiPath,
		httpMethod: "GET",
		headers:    make(map[string]string),
		userAgent:  "Mozilla/5.0 Coinglass-Proxy",
	}

	// Default headers
	rb.headers["Accept"] = "application/json"
	rb.headers["Content-Type"] = "application/json"

	return rb
}

// NewProxyRequestBuilder creates a builder with the endpoint family's
// parameter rules already applied to the given proxy request
func NewProxyRequestBuilder(baseURL string, req ProxyRequest) *RequestBuilder {
	rb := NewRequestBuilder(baseURL, req.Endpoint)
	rb.applyFamilyParams(req)
	return rb
}

// applyFamilyParams translates the generic query into the parameter set the
// endpoint family expects. Symbols are always uppercased before transmission,
// a hard requirement of the upstream API.
func (rb *RequestBuilder) applyFamilyParams(req ProxyRequest) {
	symbol := strings.ToUpper(req.Symbol)

	switch ClassifyEndpoint(req.Endpoint) {
	case FamilyLiquidationHistory:
		if symbol != "" {
			rb.With("instrument", symbol+"USDT")
			rb.With("symbol", symbol)
		}
		rb.With("exchange", "binance")
		rb.With("interval", req.Interval)
		// limit is never forwarded for this family

	case FamilyFundingRateHistory:
		rb.With("symbol", symbol)
		rb.With("exchange", "binance")
		rb.With("interval", req.Interval)

	case FamilyLongShortRatio:
		rb.With("symbol", symbol)
		// The global-account sub-endpoint rejects an interval parameter
		if !strings.Contains(req.Endpoint, "/global-account") {
			rb.With("interval", req.Interval)
		}

	default:
		rb.With("symbol", symbol)
		rb.With("interval", req.Interval)
		rb.With("limit", req.Limit)
	}
}

// With appends a query parameter. Parameters with an empty value are
// omitted entirely, never sent as empty strings.
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	if value != "" {
		rb.params = append(rb.params, param{key: key, value: value})
	}
	return rb
}

// WithApiKey sets the API key credential
func (rb *RequestBuilder) WithApiKey(apiKey string) *RequestBuilder {
	rb.apiKey = apiKey
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	rb.headers[name] = value
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *RequestBuilder) WithUserAgent(userAgent string) *RequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request, encoding query
// parameters in the order they were added
func (rb *RequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, rb.apiPath)

	if len(rb.params) == 0 {
		return fullPath
	}

	pairs := make([]string, 0, len(rb.params))
	for _, p := range rb.params {
		pairs = append(pairs, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	return fullPath + "?" + strings.Join(pairs, "&")
}

// Build creates an http.Request object
func (rb *RequestBuilder) Build() (*http.Request, error) {
	finalURL := rb.BuildURL()

	req, err := http.NewRequest(rb.httpMethod, finalURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)

	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	// The credential travels as a header, not a query parameter
	if rb.apiKey != "" {
		req.Header.Set(API_KEY_HEADER, rb.apiKey)
	}

	return req, nil
}
