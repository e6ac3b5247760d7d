package handler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Kosench/linkpulse/internal/cache"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/metrics"
)

const HeaderRequestID = "X-Request-ID"

// RequestID берет X-Request-ID клиента или выдает новый и кладет его в контекст запроса
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog пишет строку zerolog на каждый запрос и считает латентность
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())

		logger := logging.Ctx(c.Request.Context())
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery превращает панику в общий 500 без деталей
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	})
}

func tooManyRequests(c *gin.Context) {
	metrics.RateLimitRejections.Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please try again later.",
	})
}

// RedisRateLimitMiddleware - фиксированное окно на счетчике в Redis
func RedisRateLimitMiddleware(limiter cache.RateLimiter, keys *cache.KeyBuilder, maxRequests int, window time.Duration) gin.HandlerFunc {
	if keys == nil {
		keys = cache.DefaultKeyBuilder
	}

	return func(c *gin.Context) {
		key := keys.RateLimit(c.ClientIP())

		count, err := limiter.IncrementRateLimit(c.Request.Context(), key, window)
		if err != nil {
			// при недоступном Redis запрос пропускаем
			logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limit check failed")
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// InMemoryRateLimiter - token bucket на клиента, используется без Redis
type InMemoryRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func NewInMemoryRateLimiter(maxRequests int, window time.Duration) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(window / time.Duration(maxRequests)),
		burst:     maxRequests,
		ttl:       3 * window,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

func (l *InMemoryRateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) > l.ttl {
		for ip, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.visitors, ip)
			}
		}
		l.lastPrune = now
	}

	v, ok := l.visitors[clientIP]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[clientIP] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (l *InMemoryRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
