package handler

import (
	"errors"
	"net/http"

	"epass-service/internal/logger"
	"epass-service/internal/repository"
	"epass-service/internal/service"
	"epass-service/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a bare 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrPassNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
