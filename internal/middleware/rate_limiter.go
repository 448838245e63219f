package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds one token bucket per client IP.
// Idle entries are dropped by a sweep that runs at most once per idleTTL.
type rateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMin    int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*limiterEntry),
		perMin:   perMin,
		idleTTL:  10 * time.Minute,
	}
}

func (s *rateLimiterStore) get(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.limiters[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin),
		}
		s.limiters[ip] = e
	}
	e.lastSeen = now

	if now.Sub(s.lastSweep) >= s.idleTTL {
		s.sweep(now)
	}

	return e.limiter
}

func (s *rateLimiterStore) sweep(now time.Time) {
	for k, v := range s.limiters {
		if now.Sub(v.lastSeen) > s.idleTTL {
			delete(s.limiters, k)
		}
	}
	s.lastSweep = now
}

// RateLimitMiddleware allows perMin requests per minute per client IP.
// perMin <= 0 disables the limit.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newRateLimiterStore(perMin)

	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.get(ip, time.Now()).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}

func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}
