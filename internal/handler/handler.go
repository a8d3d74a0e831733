package handler

import (
	"net/http"

	"patient-registry-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	patientUC *usecase.PatientUseCase
	statsUC   *usecase.StatsUseCase
}

func New(patientUC *usecase.PatientUseCase, statsUC *usecase.StatsUseCase) *Handler {
	return &Handler{patientUC: patientUC, statsUC: statsUC}
}

// RegisterRoutes keeps the path layout of the original API so existing
// clients keep working unchanged.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Root)
	r.GET("/about", h.About)

	r.GET("/view", h.ViewPatients)
	r.GET("/patient/:id", h.GetPatient)
	r.GET("/sort", h.SortPatients)
	r.POST("/create", h.CreatePatient)
	r.PUT("/edit/:id", h.EditPatient)
	r.DELETE("/delete/:id", h.DeletePatient)

	r.GET("/stats", h.Stats)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Patient Management System API"})
}

func (h *Handler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "This is an API for patient management system"})
}
