package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/askdev-backend/pkg/ctxutil"
)

// RateLimiter keeps one token bucket per caller. Authenticated callers are
// keyed by user id, anonymous ones by remote address.
type RateLimiter struct {
	buckets sync.Map // map[string]*limiterEntry
	stop    chan struct{}
	idleTTL time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{}), idleTTL: 10 * time.Minute}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that allows perMinute requests per caller with
// the given burst. perMinute <= 0 disables limiting.
func (rl *RateLimiter) Limit(perMinute, burst int) Middleware {
	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		if burst <= 0 {
			burst = 1
		}
		every := rate.Every(time.Minute / time.Duration(perMinute))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := rl.entry(callerKey(r), every, burst)

			entry.mu.Lock()
			entry.lastSeen = time.Now()
			reservation := entry.limiter.Reserve()
			delay := reservation.Delay()
			if delay > 0 {
				reservation.Cancel()
			}
			entry.mu.Unlock()

			if !reservation.OK() || delay > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeEnvelope(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded, retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) entry(key string, every rate.Limit, burst int) *limiterEntry {
	if v, ok := rl.buckets.Load(key); ok {
		return v.(*limiterEntry)
	}
	v, _ := rl.buckets.LoadOrStore(key, &limiterEntry{
		limiter:  rate.NewLimiter(every, burst),
		lastSeen: time.Now(),
	})
	return v.(*limiterEntry)
}

func callerKey(r *http.Request) string {
	if userID, ok := ctxutil.RequesterFromCtx(r.Context()); ok {
		return "user:" + userID.String()
	}
	return "addr:" + r.RemoteAddr
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				e := value.(*limiterEntry)
				e.mu.Lock()
				idle := now.Sub(e.lastSeen)
				e.mu.Unlock()
				if idle > rl.idleTTL {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
