package handler

import (
	"errors"
	"net/http"

	"patient-registry-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// Error bodies use the "detail" key; that is the shape the original API
// exposed and its clients parse.
func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})

	case errors.Is(err, domain.ErrPatientIDConflict),
		errors.Is(err, domain.ErrInvalidPatient),
		errors.Is(err, domain.ErrInvalidSortField),
		errors.Is(err, domain.ErrInvalidSortOrder):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
