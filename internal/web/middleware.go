package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/camuig/fx-signals/internal/contact"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID keeps a caller supplied X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			s.logger.Error("request", attrs...)
		case c.Request.URL.Path == "/healthz" || c.Request.URL.Path == "/metrics":
			s.logger.Debug("request", attrs...)
		default:
			s.logger.Info("request", attrs...)
		}
	}
}

func (s *Server) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.deps.Metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		s.deps.Metrics.ObserveRequest(c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		s.logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", err,
			"request_id", c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	})
}

// requireOrigin rejects contact posts from origins outside the allowed set
// when enforcement is on.
func (s *Server) requireOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !s.origins.Allowed(origin) {
			s.logger.Warn("contact post from disallowed origin", "origin", origin)
			if s.deps.Metrics != nil {
				s.deps.Metrics.ContactSubmission("forbidden")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: contact.MsgUnauthorized})
			return
		}
		c.Next()
	}
}
