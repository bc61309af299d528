package middleware

import (
	"sync"
	"time"

	"go-hr-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is the minimum time a key must stay unused before its
// limiter is dropped.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyRateLimiter struct {
	keys map[string]*limiterEntry
	mu   *sync.Mutex
	r    rate.Limit // jumlah request per detik
	b    int        // burst (kapasitas kantong)

	// idle keys are swept at most once per idleTTL. idleTTL is never
	// shorter than a full bucket refill, so a dropped key comes back with
	// the same allowance it would have had.
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyRateLimiter(r rate.Limit, b int) *KeyRateLimiter {
	ttl := limiterIdleTTL
	if r > 0 {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > ttl {
			ttl = refill
		}
	}
	return &KeyRateLimiter{
		keys:      make(map[string]*limiterEntry),
		mu:        &sync.Mutex{},
		r:         r,
		b:         b,
		idleTTL:   ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	entry, exists := l.keys[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.keys[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// sweep drops limiters idle for longer than idleTTL. Caller holds mu.
func (l *KeyRateLimiter) sweep(now time.Time) {
	for k, e := range l.keys {
		if now.Sub(e.lastSeen) >= l.idleTTL {
			delete(l.keys, k)
		}
	}
	l.lastSweep = now
}

// Len reports how many keys are tracked.
func (l *KeyRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			abortWithError(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByUser: r = request per detik, b = burst. Dipasang setelah Authenticate.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			abortWithError(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
