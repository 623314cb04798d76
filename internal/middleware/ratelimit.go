package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/symptom-triage-server/internal/domain"
)

// ClientLimiter enforces a per-client request rate on the screening
// endpoints. Limiters live in an LRU cache keyed by client IP, so
// memory stays bounded under churn; an evicted client simply gets a
// fresh allowance.
type ClientLimiter struct {
	clients   *lru.Cache[string, *rate.Limiter]
	perMinute int
	burst     int
}

// NewClientLimiter creates a limiter allowing perMinute requests with
// the given burst per client, tracking at most cacheSize clients.
func NewClientLimiter(perMinute, burst, cacheSize int) (*ClientLimiter, error) {
	clients, err := lru.New[string, *rate.Limiter](cacheSize)
	if err != nil {
		return nil, err
	}
	return &ClientLimiter{
		clients:   clients,
		perMinute: perMinute,
		burst:     burst,
	}, nil
}

// Middleware returns the gin handler that rejects over-limit clients
// with 429 and the standard error envelope.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": domain.NewTriageError(
					domain.ErrRateLimit,
					"Too many requests, please slow down",
					"",
					c.GetString("correlation_id"),
				),
			})
			return
		}
		c.Next()
	}
}

// Allow reports whether the client may proceed, consuming one token.
func (l *ClientLimiter) Allow(clientIP string) bool {
	limiter, ok := l.clients.Get(clientIP)
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst)
		l.clients.Add(clientIP, limiter)
	}
	return limiter.Allow()
}
