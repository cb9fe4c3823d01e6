package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of a budget check for a single request
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// clientState tracks one client's request count within the current window
type clientState struct {
	mu            sync.Mutex
	count         int
	windowResetAt time.Time
}

// Limiter is a fixed-window request counter keyed by client identity.
// Counts reset at discrete window boundaries, so a client can burst up to
// twice the budget across a boundary; that tradeoff keeps the bookkeeping
// to a single counter and timestamp per client.
type Limiter struct {
	mu      sync.RWMutex
	clients map[string]*clientState
	budget  int
	window  time.Duration
	timeNow func() time.Time
}

// NewLimiter creates a limiter admitting budget requests per window
func NewLimiter(budget int, window time.Duration) *Limiter {
	return NewLimiterWithClock(budget, window, time.Now)
}

// NewLimiterWithClock creates a limiter with an injectable clock for tests
func NewLimiterWithClock(budget int, window time.Duration, timeNow func() time.Time) *Limiter {
	return &Limiter{
		clients: make(map[string]*clientState),
		budget:  budget,
		window:  window,
		timeNow: timeNow,
	}
}

// Check admits or rejects a request from the given client.
// The increment-and-compare sequence holds the client's own lock, so
// concurrent requests from one client cannot both slip under the budget,
// while requests from distinct clients do not contend.
func (l *Limiter) Check(clientID string) Decision {
	state := l.getOrCreateState(clientID)
	now := l.timeNow()

	state.mu.Lock()
	defer state.mu.Unlock()

	if now.After(state.windowResetAt) {
		state.count = 0
		state.windowResetAt = now.Add(l.window)
	}

	if state.count >= l.budget {
		// Budget exhausted, do not increment further
		return Decision{Allowed: false, Remaining: 0, ResetAt: state.windowResetAt}
	}

	state.count++
	return Decision{
		Allowed:   true,
		Remaining: l.budget - state.count,
		ResetAt:   state.windowResetAt,
	}
}

// getOrCreateState returns the state for a client, creating it lazily
func (l *Limiter) getOrCreateState(clientID string) *clientState {
	l.mu.RLock()
	if state, ok := l.clients[clientID]; ok {
		l.mu.RUnlock()
		return state
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if state, ok := l.clients[clientID]; ok {
		return state
	}

	state := &clientState{
		windowResetAt: l.timeNow().Add(l.window),
	}
	l.clients[clientID] = state
	return state
}

// ClientCount returns the number of tracked client entries
func (l *Limiter) ClientCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// EvictStale removes client entries whose window expired more than age ago.
// Entries inside a live window are never touched, so eviction cannot hand
// a client a fresh budget early. Returns the number of entries removed.
func (l *Limiter) EvictStale(age time.Duration) int {
	now := l.timeNow()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for clientID, state := range l.clients {
		state.mu.Lock()
		stale := now.Sub(state.windowResetAt) > age
		state.mu.Unlock()

		if stale {
			delete(l.clients, clientID)
			evicted++
		}
	}
	return evicted
}
