package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/coinglass-proxy/coinglass"
	"github.com/status-im/coinglass-proxy/config"
	"github.com/status-im/coinglass-proxy/metrics"
	"github.com/status-im/coinglass-proxy/ratelimit"
)

// ProxyService resolves proxy requests from cache or the Coinglass upstream
type ProxyService interface {
	Proxy(ctx context.Context, req coinglass.ProxyRequest) (coinglass.Outcome, string, error)
	Healthy() bool
}

// RateLimiter enforces the per-client request budget
type RateLimiter interface {
	Check(clientID string) ratelimit.Decision
	Healthy() bool
}

// HealthReporter exposes a component's readiness
type HealthReporter interface {
	Healthy() bool
}

type Server struct {
	port         string
	config       *config.Config
	rateLimiter  RateLimiter
	proxyService ProxyService
	cacheService HealthReporter
	server       *http.Server
}

func New(port string, cfg *config.Config, rateLimiter RateLimiter, proxyService ProxyService, cacheService HealthReporter) *Server {
	return &Server{
		port:         port,
		config:       cfg,
		rateLimiter:  rateLimiter,
		proxyService: proxyService,
		cacheService: cacheService,
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()
	router.Use(recoveryMiddleware)

	router.HandleFunc("/api/v1/coinglass", s.handleCoinglassProxy).Methods("GET")

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// recoveryMiddleware converts panics anywhere in the pipeline into a
// generic 500 so no partial state or internal detail leaks to the caller
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Recovered from panic serving %s: %v", r.URL.Path, rec)
				metrics.RecordGatewayRequest(metrics.StatusError)
				writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
