package handler

import (
	"net/http"
	"strings"
	"time"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	sessionIDKey = "session_id"
)

type AuthMiddleware struct {
	authService *service.AuthService
	log         *logger.Logger
}

func NewAuthMiddleware(authService *service.AuthService, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log.With("middleware", "auth"),
	}
}

// Authenticate resolves the bearer token, if any, into a principal. Requests
// without a token continue as Anonymous; a token that fails verification is
// rejected outright.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Set(principalKey, model.Principal(model.Anonymous{}))
			c.Next()
			return
		}

		principal, sessionID, err := m.authService.Resolve(c.Request.Context(), token)
		if err != nil {
			m.log.Debug("token rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(principalKey, principal)
		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// RequireAdmin short-circuits the admin routes before any handler runs.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch principalFrom(c).(type) {
		case model.Administrator:
			c.Next()
		case model.Citizen:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		}
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func principalFrom(c *gin.Context) model.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(model.Principal); ok {
			return p
		}
	}
	return model.Anonymous{}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if sid := c.GetString(sessionIDKey); sid != "" {
			fields = append(fields, "session_id", sid)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
