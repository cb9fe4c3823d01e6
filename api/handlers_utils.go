package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/status-im/coinglass-proxy/ratelimit"
)

const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"

	// Default client identity when no forwarding headers are present
	defaultClientID = "default"
)

// setCacheStatusHeader sets the Cache-Status header based on cache status
func (s *Server) setCacheStatusHeader(w http.ResponseWriter, cacheStatus string) {
	if cacheStatus != "" {
		w.Header().Set("Cache-Status", cacheStatus)
	}
}

// setRateLimitHeaders attaches the budget decision to the response.
// The reset time is reported in epoch milliseconds.
func setRateLimitHeaders(w http.ResponseWriter, decision ratelimit.Decision) {
	w.Header().Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))
	w.Header().Set(headerRateLimitReset, strconv.FormatInt(decision.ResetAt.UnixMilli(), 10))
}

// clientIdentity derives the rate-limit key from forwarding headers,
// falling back to a constant identity when none are present
func clientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the originating client
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return defaultClientID
}

// paramWithDefault returns a query parameter or the given default when absent
func paramWithDefault(r *http.Request, key, defaultValue string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return defaultValue
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func sendJSONResponse(w http.ResponseWriter, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Error encoding response")
		return
	}

	// Calculate ETag (MD5 hash of the response)
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// sendRawJSONResponse forwards a pre-encoded JSON payload unmodified
func sendRawJSONResponse(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))

	if _, err := w.Write(payload); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// writeJSONError writes a JSON error body with the given status code
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body, _ := json.Marshal(map[string]string{"error": message})
	if _, err := w.Write(body); err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
