package handler

import (
	"net/http"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/service"

	"github.com/gin-gonic/gin"
)

type PassHandler struct {
	passService *service.PassService
	viewService *service.ViewService
	log         *logger.Logger
}

func NewPassHandler(passService *service.PassService, viewService *service.ViewService, log *logger.Logger) *PassHandler {
	return &PassHandler{
		passService: passService,
		viewService: viewService,
		log:         log.With("handler", "pass"),
	}
}

// Handles GET /passes - the signed-in citizen's applications.
func (h *PassHandler) GetMyPasses(c *gin.Context) {
	passes, err := h.viewService.CitizenPasses(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.PassListResponse{Passes: passes, Total: len(passes)})
}

// Handles POST /passes - submits a new application for review.
func (h *PassHandler) Submit(c *gin.Context) {
	var draft model.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pass, err := h.passService.Submit(c.Request.Context(), principalFrom(c), &draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted successfully",
		"pass":    pass,
	})
}

// Handles GET /passes/:id
func (h *PassHandler) GetPass(c *gin.Context) {
	pass, err := h.viewService.PassDetail(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, pass)
}

// Handles GET /categories - ?active=true limits the list to selectable categories.
func (h *PassHandler) GetCategories(c *gin.Context) {
	categories := h.viewService.Categories(c.Query("active") == "true")
	c.JSON(http.StatusOK, model.CategoryListResponse{Categories: categories, Total: len(categories)})
}
