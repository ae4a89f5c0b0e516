package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/tally/internal/db"
)

const callerKey = "caller"

// requestLogger logs one line per request
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		log.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// authRequired resolves the bearer token into a db.Caller
func (h *handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			h.abortWithError(c, &db.Error{Kind: db.ErrUnauthorized, Message: "Not authenticated."})
			return
		}

		caller, err := h.store.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// superuserRequired rejects callers without the superuser flag
func (h *handler) superuserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).Superuser {
			h.abortWithError(c, &db.Error{Kind: db.ErrForbidden, Message: "The user doesn't have enough privileges."})
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) db.Caller {
	caller, _ := c.MustGet(callerKey).(db.Caller)
	return caller
}
