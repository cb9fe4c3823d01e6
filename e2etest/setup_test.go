package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/status-im/coinglass-proxy/api"
	"github.com/status-im/coinglass-proxy/core"
)

// Ports are allocated sequentially so test environments don't collide
var nextPort atomic.Int32

func init() {
	nextPort.Store(18200)
}

// TestEnv represents a full gateway test environment
type TestEnv struct {
	Registry      *core.Registry
	Server        *api.Server
	MockServer    *MockUpstream
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest wires the whole pipeline against a mock upstream
func SetupTest(t *testing.T) *TestEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	mockServer := NewMockUpstream()

	cfg, configPath, err := loadTestConfig(mockServer.URL())
	if err != nil {
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	registry, services, err := core.Setup(ctx, cfg)
	if err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		registry.StopAll()
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	port := fmt.Sprintf("%d", nextPort.Add(1))
	server := api.New(port, cfg, services.RateLimit, services.Coinglass, services.Cache)
	if err := server.Start(ctx); err != nil {
		registry.StopAll()
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to start server: %v", err)
	}

	env := &TestEnv{
		Registry:      registry,
		Server:        server,
		MockServer:    mockServer,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: "http://localhost:" + port,
	}

	env.waitForServer(t)
	return env
}

// waitForServer polls /health until the HTTP server accepts requests
func (env *TestEnv) waitForServer(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(env.ServerBaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Server did not become ready in time")
}

// TearDown stops all services and cleans up
func (env *TestEnv) TearDown() {
	env.Server.Stop()
	env.Registry.StopAll()
	env.MockServer.Close()
	cleanupTestConfig(env.ConfigPath)
	env.CancelFunc()
}
