package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = rl.now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: rl.now()}
	return l
}

// Cleanup forgets clients idle for longer than maxIdle and returns how many were dropped.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	dropped := 0
	for ip, c := range rl.clients {
		if rl.now().Sub(c.seen) > maxIdle {
			delete(rl.clients, ip)
			dropped++
		}
	}
	return dropped
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit answers 429 once a client IP exhausts its bucket.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.get(clientIP(r)).Allow() {
				response.HandleError(w, auth.ErrTooManyAttempts)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
