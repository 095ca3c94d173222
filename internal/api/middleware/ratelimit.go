package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
	"golang.org/x/time/rate"
)

// limiterCacheSize bounds the per-user bucket cache. An evicted user gets
// a fresh (full) bucket on their next request, which is acceptable for
// attendee-scale traffic.
const limiterCacheSize = 8192

// UserRateLimiter keeps one token bucket per authenticated user, capped
// by an LRU so the set of tracked users cannot grow without bound.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewUserRateLimiter allows r events per second with bursts of at most b.
func NewUserRateLimiter(r float64, b int) *UserRateLimiter {
	limiters, err := lru.New[string, *rate.Limiter](limiterCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &UserRateLimiter{
		limiters: limiters,
		limit:    rate.Limit(r),
		burst:    b,
	}
}

func (l *UserRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, lim)
	}
	return lim
}

// Allow reports whether one event for key may proceed now.
func (l *UserRateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// TrackedUsers returns the number of users with a live bucket.
func (l *UserRateLimiter) TrackedUsers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limiters.Len()
}

// RateLimitMiddleware throttles requests per authenticated user. It must run
// after AuthMiddleware; unauthenticated requests pass through untouched.
func RateLimitMiddleware(l *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if ok && !l.Allow(userID) {
			c.JSON(http.StatusTooManyRequests, types.ErrorResponse{Error: "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
