package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"seguradora/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ──────────────────────────────────────────────────────

// janela tracks attempts per client IP within a fixed window.
type janela struct {
	count     int
	windowEnd time.Time
}

type limitador struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	ips       map[string]*janela
	nextPurge time.Time
	now       func() time.Time
}

func newLimitador(limit int, window time.Duration) *limitador {
	return &limitador{limit: limit, window: window, ips: make(map[string]*janela), now: time.Now}
}

// permitir counts one attempt for ip and reports whether it is within the
// limit, plus the end of the current window.
func (l *limitador) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purge(now)
		l.nextPurge = now.Add(5 * l.window)
	}

	j, ok := l.ips[ip]
	if !ok || now.After(j.windowEnd) {
		j = &janela{windowEnd: now.Add(l.window)}
		l.ips[ip] = j
	}
	j.count++
	return j.count <= l.limit, j.windowEnd
}

// purge drops expired windows so IPs that never return do not accumulate.
func (l *limitador) purge(now time.Time) {
	purged := 0
	for ip, j := range l.ips {
		if now.After(j.windowEnd) {
			delete(l.ips, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.ips)).Msg("rate limiter purged")
	}
}

func (l *limitador) handler(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fim := l.permitir(c.ClientIP())
		if !ok {
			secs := int(time.Until(fim).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimitador(20, time.Minute).handler("Muitas tentativas de login. Tente novamente em 1 minuto.")
}

// RateLimiter is a general-purpose per-IP limiter for the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimitador(limit, window).handler("Muitas requisições. Tente novamente em instantes.")
}
