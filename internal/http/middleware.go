package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/service"
)

const contentSecurityPolicy = "default-src 'self'; style-src 'self'; img-src 'self'; script-src 'self'"

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Error("request")
			return
		}
		entry.Info("request")
	}
}

// loadSession resolves the visitor's session once per request. A store outage
// degrades to an anonymous session rather than failing the page.
func (h *Handler) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := h.sessions.Load(c); err != nil {
			h.log.WithError(err).Warn("session store unavailable, continuing anonymously")
		}
		c.Next()
	}
}

func (h *Handler) requireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.session(c).Authenticated() {
			h.redirect(c, "/login", noticeLoginRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) requireRole(role domain.Role, notice string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Authorize(h.session(c).Data.Role, role); err != nil {
			h.redirect(c, "/dashboard", notice)
			c.Abort()
			return
		}
		c.Next()
	}
}
