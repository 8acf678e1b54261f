// Package ratelimit throttles API clients with per-endpoint token
// buckets. Buckets refill continuously, so a client that bursts to the
// cap earns requests back at the steady per-window rate.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Info reports the outcome of one rate-limit decision, shaped for the
// standard X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Rule throttles one endpoint. Path matches exactly, or as a prefix when
// it ends with "/". Burst caps the bucket; zero means the whole
// per-window allowance is available up front.
type Rule struct {
	Path      string
	Method    string
	PerWindow int
	Window    time.Duration
	Burst     int
}

// Config holds the limiter settings. Whitelisted clients bypass every
// rule; blacklisted clients are always refused.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// bucket tracks one client+endpoint allowance. All fields are guarded by
// the limiter mutex.
type bucket struct {
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	refilled time.Time
	lastSeen time.Time
}

func (b *bucket) refill(now time.Time) {
	b.tokens += now.Sub(b.refilled).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.refilled = now
}

func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// fullAt returns when the bucket is back at capacity.
func (b *bucket) fullAt(now time.Time) time.Time {
	if b.tokens >= b.capacity {
		return now
	}
	wait := (b.capacity - b.tokens) / b.rate
	return now.Add(time.Duration(wait * float64(time.Second)))
}

// Limiter hands out tokens per client, method, and path.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
}

// NewLimiter creates a limiter. A nil config enables a permissive
// default tier with periodic bucket eviction.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.sweep()
	}
	return l
}

// Allow decides one request and returns the header info either way.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := l.match(path, method)
	if rule.PerWindow <= 0 {
		return true, Info{Allowed: true}
	}
	window := rule.Window
	if window <= 0 {
		window = time.Minute
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := clientID + " " + method + " " + path
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.PerWindow
		}
		b = &bucket{
			tokens:   float64(capacity),
			capacity: float64(capacity),
			rate:     float64(rule.PerWindow) / window.Seconds(),
			refilled: now,
		}
		l.buckets[key] = b
	}

	allowed := b.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.PerWindow,
		Remaining: int(b.tokens),
		ResetTime: b.fullAt(now),
	}
	if !allowed {
		if retry := info.ResetTime.Sub(now); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

// match finds the rule covering a path and method: exact rules first,
// then trailing-slash prefixes. Health checks are never limited;
// anything unmatched falls into the default tier.
func (l *Limiter) match(path, method string) Rule {
	if path == "/health" && method == "GET" {
		return Rule{}
	}
	for _, r := range l.config.Rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	for _, r := range l.config.Rules {
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return Rule{PerWindow: l.config.DefaultLimit, Window: l.config.DefaultWindow}
}

// sweep periodically drops buckets idle for over an hour.
func (l *Limiter) sweep() {
	for {
		select {
		case <-l.ticker.C:
			l.evict(l.now().Add(-time.Hour))
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) evict(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the background sweep.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
		close(l.done)
	}
}
