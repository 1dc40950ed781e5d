package handler

import (
	"context"
	"net/http"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/service"

	"github.com/gin-gonic/gin"
)

// OutboxStats reports outbox message counts by status.
type OutboxStats interface {
	GetStats(ctx context.Context) (map[string]int, error)
}

type AdminHandler struct {
	passService *service.PassService
	viewService *service.ViewService
	outbox      OutboxStats
	log         *logger.Logger
}

// NewAdminHandler wires the admin endpoints. outbox is nil when messaging is
// disabled.
func NewAdminHandler(passService *service.PassService, viewService *service.ViewService, outbox OutboxStats, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		passService: passService,
		viewService: viewService,
		outbox:      outbox,
		log:         log.With("handler", "admin"),
	}
}

// Handles GET /admin/passes?status= - the review queue, all statuses by default.
func (h *AdminHandler) GetQueue(c *gin.Context) {
	filter := model.StatusFilter(c.Query("status"))
	passes, err := h.viewService.AdminQueue(c.Request.Context(), principalFrom(c), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.PassListResponse{Passes: passes, Total: len(passes)})
}

// Handles POST /admin/passes/:id/decision
func (h *AdminHandler) Decide(c *gin.Context) {
	var req model.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pass, err := h.passService.Decide(c.Request.Context(), principalFrom(c), c.Param("id"), req.Decision, req.Notes)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Application " + string(pass.Status),
		"pass":    pass,
	})
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.viewService.Dashboard(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) GetOutboxStats(c *gin.Context) {
	if h.outbox == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging disabled"})
		return
	}
	stats, err := h.outbox.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
