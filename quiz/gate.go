package quiz

import "sync"

// Gate defaults.
const (
	DefaultSecret    = "bridge"
	DefaultUnlockKey = "mist_unlocked"
)

// SessionStore is a string key/value store that lives for one session.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemorySession is a SessionStore held in memory. Safe for concurrent use.
type MemorySession struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemorySession creates an empty session store.
func NewMemorySession() *MemorySession {
	return &MemorySession{data: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemorySession) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key.
func (m *MemorySession) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Gate is a placeholder password screen. It keeps casual visitors out of a
// kiosk build and nothing more.
type Gate struct {
	secret string
	key    string
	store  SessionStore
	failed bool
}

// NewGate creates a gate. Empty secret or key take the defaults.
func NewGate(store SessionStore, secret, key string) *Gate {
	if secret == "" {
		secret = DefaultSecret
	}
	if key == "" {
		key = DefaultUnlockKey
	}
	return &Gate{secret: secret, key: key, store: store}
}

// Unlocked reports whether this session has already passed the gate.
func (g *Gate) Unlocked() bool {
	v, ok := g.store.Get(g.key)
	return ok && v == "true"
}

// Submit checks a password. A match unlocks the session.
func (g *Gate) Submit(password string) bool {
	if password != g.secret {
		g.failed = true
		return false
	}
	g.Unlock()
	return true
}

// Unlock marks the session as past the gate without a password.
func (g *Gate) Unlock() {
	g.store.Set(g.key, "true")
	g.failed = false
}

// Failed reports whether the last Submit was rejected.
func (g *Gate) Failed() bool { return g.failed }

// ClearError hides the rejection message once the user types again.
func (g *Gate) ClearError() { g.failed = false }
