package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Altair788/AdHub/internal/shared/logger"
)

// visitorTTL: через сколько простоя лимитер клиента забывается.
const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов отдельно для каждого клиента.
// Клиент определяется по IP или, для key=user, по ID пользователя.
type RateLimiter struct {
	rps    rate.Limit
	burst  int
	byUser bool
	log    *logger.HTTPLogger

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

func NewRateLimiter(rps float64, burst int, key string, log *logger.HTTPLogger) *RateLimiter {
	if log == nil {
		log = logger.NewNop()
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		byUser:   key == "user",
		log:      log,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > visitorTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastGC = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *RateLimiter) key(r *http.Request) string {
	if l.byUser {
		if id, ok := UserIDFromContext(r.Context()); ok {
			return "user:" + strconv.FormatInt(id, 10)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// Middleware отвечает 429, когда клиент исчерпал лимит.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)
		if !l.allow(key) {
			l.log.Warn("too many requests", zap.String("key", key), zap.String("uri", r.RequestURI))
			writeError(w, r, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
