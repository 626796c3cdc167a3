// Package ratelimit provides per-client request rate limiting using the
// token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client+endpoint pair. Tokens refill at a
// steady rate up to the burst capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// refillLocked advances the bucket to now. Caller holds mu.
func (b *bucket) refillLocked(now time.Time) {
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
}

// take consumes one token if available and reports the bucket state.
func (b *bucket) take() (allowed bool, remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)
	b.lastAccess = now

	if b.tokens >= 1.0 {
		b.tokens--
		allowed = true
	}

	remaining = int(b.tokens)
	resetTime = now
	if b.tokens < float64(b.capacity) {
		secondsUntilFull := (float64(b.capacity) - b.tokens) / b.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info describes the rate limit state for one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages token buckets per client+endpoint pair.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Allowlist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks whether a request from clientID to endpoint/method may
// proceed, consuming a token when it does.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Allowlist[clientID] {
		return true, Info{Allowed: true}
	}

	rule := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if rule == nil {
		rule = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if rule.Limit <= 0 {
		// Unlimited endpoint (health checks).
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	allowed, remaining, resetTime := l.getBucket(key, rule).take()

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		if retry := time.Until(resetTime); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, rule *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	refillRate := float64(rule.Limit) / rule.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(capacity, refillRate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictStale drops buckets idle for over an hour.
func (l *Limiter) evictStale() {
	cutoff := time.Now().Add(-time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		b.mu.Lock()
		stale := b.lastAccess.Before(cutoff)
		b.mu.Unlock()
		if stale {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
