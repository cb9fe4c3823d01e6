package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"coinglass":    "unknown",
			"cache":        "unknown",
			"rate_limiter": "unknown",
		},
	}

	services := status["services"].(map[string]string)

	if s.proxyService != nil && s.proxyService.Healthy() {
		services["coinglass"] = "up"
	}

	if s.cacheService != nil && s.cacheService.Healthy() {
		services["cache"] = "up"
	}

	if s.rateLimiter != nil && s.rateLimiter.Healthy() {
		services["rate_limiter"] = "up"
	}

	sendJSONResponse(w, status)
}
