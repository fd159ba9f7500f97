package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rgehrsitz/iitgo/internal/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestIDMiddleware reuses the caller's request id or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			s.logger.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			s.logger.Warn("HTTP request", fields...)
		default:
			s.logger.Info("HTTP request", fields...)
		}
	}
}

// clientLimiter keeps one token bucket per client IP and forgets clients
// idle for longer than expiresIn.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	expiresIn time.Duration
	clients   map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(cfg config.RateLimitConfig, expiresIn time.Duration) *clientLimiter {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     burst,
		expiresIn: expiresIn,
		clients:   make(map[string]*visitor),
		now:       time.Now,
	}
}

func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.expiresIn {
		for id, v := range l.clients {
			if now.Sub(v.lastSeen) > l.expiresIn {
				delete(l.clients, id)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.clients[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{
				Success: false,
				Error:   "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
