// Package middleware holds the HTTP middleware stack: auth, logging, panic
// recovery, CORS, and per-IP rate limiting.
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// window tracks one client's request count inside a fixed window.
type window struct {
	mu     sync.Mutex
	count  int
	expiry time.Time
}

func (w *window) take(max int, span time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.expiry) {
		w.count = 0
		w.expiry = now.Add(span)
	}
	w.count++
	return w.count <= max
}

type limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	span    time.Duration
}

func newLimiter(span time.Duration) *limiter {
	l := &limiter{clients: map[string]*window{}, span: span}
	go l.sweep()
	return l
}

// sweep drops expired windows so the map stays bounded on long-running
// servers.
func (l *limiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.clients {
			w.mu.Lock()
			gone := now.After(w.expiry)
			w.mu.Unlock()
			if gone {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *limiter) windowFor(ip string) *window {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w, ok := l.clients[ip]; ok {
		return w
	}
	w := &window{expiry: time.Now().Add(l.span)}
	l.clients[ip] = w
	return w
}

// RateLimit caps each client IP at max requests per span, e.g.
// middleware.RateLimit(200, time.Minute).
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(span)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}
			if !l.windowFor(ip).take(max, span) {
				http.Error(w, `{"status":429,"message":"Too Many Requests"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
