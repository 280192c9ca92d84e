package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
)

var errRateLimited = &APIError{Type: ErrorTypeRateLimited, Message: "rate limit exceeded", Err: errors.New("too many requests")}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	config  config.RateLimitConfig
	logger  *logging.Logger
	clients map[string]*rate.Limiter
	mu      sync.RWMutex
}

func NewRateLimiter(cfg config.RateLimitConfig, logger *logging.Logger) *RateLimiter {
	return &RateLimiter{
		config:  cfg,
		logger:  logger,
		clients: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.clients[ip]
	rl.mu.RUnlock()
	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if limiter, exists = rl.clients[ip]; !exists {
		limiter = rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)
		rl.clients[ip] = limiter
	}
	return limiter
}

// Clients returns the number of tracked client IPs.
func (rl *RateLimiter) Clients() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.clients)
}

// Cleanup drops clients whose bucket has refilled.
func (rl *RateLimiter) Cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, limiter := range rl.clients {
		if limiter.TokensAt(now) >= float64(rl.config.Burst) {
			delete(rl.clients, ip)
		}
	}
}

// Run calls Cleanup every interval until ctx ends.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.Cleanup(now)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, rl.logger, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
