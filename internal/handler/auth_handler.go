package handler

import (
	"net/http"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log.With("handler", "auth")}
}

func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "epass-service"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// Logout clears the caller's session. Calling it without a session is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := c.GetString(sessionIDKey); sessionID != "" {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			respondError(c, h.log, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the stored session state, the anonymous state when there is none.
func (h *AuthHandler) Me(c *gin.Context) {
	sessionID := c.GetString(sessionIDKey)
	if sessionID == "" {
		c.JSON(http.StatusOK, model.AnonymousSession())
		return
	}
	session, err := h.authService.Session(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.SessionFor(session.Principal()))
}
