package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/status-im/coinglass-proxy/coinglass"
	"github.com/status-im/coinglass-proxy/metrics"
)

// Downstream caches may serve a stale success for this long while revalidating
const staleWhileRevalidateSeconds = 30

// handleCoinglassProxy fronts the Coinglass API: it validates the inbound
// query, charges the client's request budget, resolves the translated
// request through cache or upstream, and maps the outcome onto the stable
// client-facing contract
func (s *Server) handleCoinglassProxy(w http.ResponseWriter, r *http.Request) {
	// Validation happens before the budget check so rejected-invalid
	// requests never consume quota
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {
		metrics.RecordGatewayRequest(metrics.StatusBadRequest)
		writeJSONError(w, http.StatusBadRequest, "Missing required parameter: endpoint")
		return
	}

	clientID := clientIdentity(r)
	decision := s.rateLimiter.Check(clientID)
	setRateLimitHeaders(w, decision)

	if !decision.Allowed {
		metrics.RecordGatewayRequest(metrics.StatusRateLimited)
		log.Printf("Proxy: Rate limit exceeded for client %s", clientID)
		writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
		return
	}

	proxyRequest := coinglass.ProxyRequest{
		Endpoint: endpoint,
		Symbol:   r.URL.Query().Get("symbol"),
		Interval: paramWithDefault(r, "interval", s.config.Proxy.DefaultInterval),
		Limit:    paramWithDefault(r, "limit", s.config.Proxy.DefaultLimit),
	}

	outcome, cacheStatus, err := s.proxyService.Proxy(r.Context(), proxyRequest)
	if err != nil {
		// Diagnostic detail is logged, never exposed to the caller
		log.Printf("Proxy: Upstream call failed for %s: %v", endpoint, err)
		metrics.RecordGatewayRequest(metrics.StatusError)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch outcome.Kind {
	case coinglass.OutcomePlanLimited:
		// Deliberately HTTP 200 so browser consumers can render a graceful
		// limitation notice by branching on fallback:true
		metrics.RecordGatewayRequest(metrics.StatusFallback)
		sendJSONResponse(w, coinglass.NewFallbackEnvelope(outcome.Reason))

	case coinglass.OutcomeTransportFailure:
		metrics.RecordGatewayRequest(metrics.StatusUpstreamError)
		writeJSONError(w, outcome.Status, "API request failed: "+outcome.StatusText)

	default:
		metrics.RecordGatewayRequest(metrics.StatusOK)
		s.setCacheStatusHeader(w, cacheStatus)
		w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d",
			int(s.config.Coinglass.CacheTTL.Seconds()), staleWhileRevalidateSeconds))
		sendRawJSONResponse(w, outcome.Payload)
	}
}
