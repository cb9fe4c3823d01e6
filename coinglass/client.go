package coinglass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/status-im/coinglass-proxy/config"
	"github.com/status-im/coinglass-proxy/metrics"
)

// Upstream plan quota in requests per minute, mirrored by the outbound limiter
const upstreamRPM = 30

// ClientOptions configures timeouts for upstream requests
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		LogPrefix:         "Coinglass",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// Client issues the outbound Coinglass call and classifies the result.
// Failed or plan-limited calls are reported once and never retried; the
// gateway is a synchronous read-through proxy with no side effects to
// compensate.
type Client struct {
	config          *config.Config
	httpClient      *http.Client
	limiter         *rate.Limiter
	metricsWriter   *metrics.MetricsWriter
	opts            ClientOptions
	successfulFetch atomic.Bool
}

// NewClient creates a new Coinglass API client
func NewClient(cfg *config.Config) *Client {
	opts := DefaultClientOptions()

	httpClient := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &Client{
		config:        cfg,
		httpClient:    httpClient,
		// Burst of a full window so the quota is enforced per minute, not spread evenly
		limiter:       rate.NewLimiter(rate.Limit(float64(upstreamRPM)/60.0), upstreamRPM),
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceCoinglass),
		opts:          opts,
	}
}

// Healthy returns true if at least one upstream fetch has succeeded
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

// Fetch issues a GET for the translated request and classifies the result.
// A returned error means the call could not be completed or decoded at all;
// upstream-reported failures come back as a non-success Outcome instead.
func (c *Client) Fetch(ctx context.Context, preq ProxyRequest) (Outcome, error) {
	requestBuilder := NewProxyRequestBuilder(GetApiBaseUrl(c.config), preq)
	if c.config.APIKey != nil {
		requestBuilder.WithApiKey(c.config.APIKey.Key)
	}

	req, err := requestBuilder.Build()
	if err != nil {
		c.metricsWriter.OnRequest("error")
		return Outcome{}, fmt.Errorf("error building request: %v", err)
	}
	req = req.WithContext(ctx)

	// Throttle toward the upstream quota before executing the request
	if err := c.limiter.Wait(ctx); err != nil {
		c.metricsWriter.OnRequest("error")
		return Outcome{}, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		c.metricsWriter.OnRequest("error")
		return Outcome{}, fmt.Errorf("request failed after %.2fs: %v", requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	c.metricsWriter.RecordUpstreamDuration(requestDuration)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metricsWriter.OnRequest("error")
		return Outcome{}, fmt.Errorf("error reading response: %v", err)
	}

	outcome, err := classifyOutcome(preq.Endpoint, resp.StatusCode, body)
	if err != nil {
		c.metricsWriter.OnRequest("error")
		return Outcome{}, err
	}

	switch outcome.Kind {
	case OutcomeSuccess:
		c.metricsWriter.OnRequest("success")
		c.successfulFetch.Store(true)
	case OutcomePlanLimited:
		c.metricsWriter.OnRequest("plan_limited")
		log.Printf("%s: Plan-limited response for %s", c.opts.LogPrefix, preq.Endpoint)
	default:
		c.metricsWriter.OnRequest("error")
		log.Printf("%s: Upstream returned status %d for %s", c.opts.LogPrefix, outcome.Status, preq.Endpoint)
	}

	return outcome, nil
}

// isPlanGatedEndpoint reports whether the endpoint family is known to be
// gated behind a higher Coinglass service tier
func isPlanGatedEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, "/liquidation/history") ||
		strings.Contains(endpoint, "/funding-rate/history")
}

// classifyOutcome turns a raw upstream response into a tagged Outcome.
// Transport status is not trusted alone: a successful status still has its
// body's own code and message fields inspected before declaring success.
func classifyOutcome(endpoint string, status int, body []byte) (Outcome, error) {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if isPlanGatedEndpoint(endpoint) {
			return Outcome{Kind: OutcomePlanLimited, Reason: PlanLimitEndpoint}, nil
		}
		return Outcome{
			Kind:       OutcomeTransportFailure,
			Status:     status,
			StatusText: http.StatusText(status),
		}, nil
	}

	if !json.Valid(body) {
		return Outcome{}, fmt.Errorf("error parsing upstream response: invalid JSON")
	}

	// Non-object bodies carry no status envelope and pass through as-is
	var envelope upstreamEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if !envelope.ok() && strings.Contains(strings.ToLower(envelope.Msg), "instrument") {
			return Outcome{Kind: OutcomePlanLimited, Reason: PlanLimitParameter}, nil
		}
	}

	// Unrecognized upstream error codes are passed through verbatim, not swallowed
	return Outcome{Kind: OutcomeSuccess, Payload: body}, nil
}
