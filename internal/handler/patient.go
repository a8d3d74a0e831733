package handler

import (
	"net/http"

	"patient-registry-service/internal/domain"
	"patient-registry-service/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ViewPatients returns the whole registry as an object keyed by patient id.
func (h *Handler) ViewPatients(c *gin.Context) {
	patients, _, err := h.patientUC.List(c.Request.Context(), domain.ListFilter{})
	if err != nil {
		log.WithError(err).Error("view patients failed")
		mapDomainError(c, err)
		return
	}

	items := make(map[string]dto.PatientResponse, len(patients))
	for _, p := range patients {
		items[p.ID] = dto.ToPatientResponse(p)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.patientUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPatientResponse(patient))
}

func (h *Handler) SortPatients(c *gin.Context) {
	sortBy := c.Query("sort_by")
	if sortBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": domain.ErrInvalidSortField.Error()})
		return
	}

	filter := domain.ListFilter{
		SortBy: sortBy,
		Order:  c.DefaultQuery("order", domain.OrderAsc),
		City:   c.Query("city"),
		Gender: c.Query("gender"),
	}

	patients, _, err := h.patientUC.List(c.Request.Context(), filter)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		items = append(items, dto.ToPatientResponse(p))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req dto.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if _, err := h.patientUC.Create(c.Request.Context(), dto.ToPatient(req)); err != nil {
		log.WithError(err).WithField("patient_id", req.ID).Error("create patient failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "patient created successfully"})
}

func (h *Handler) EditPatient(c *gin.Context) {
	var req dto.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if _, err := h.patientUC.Update(c.Request.Context(), c.Param("id"), req.Updates()); err != nil {
		log.WithError(err).WithField("patient_id", c.Param("id")).Error("update patient failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "patient updated successfully"})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	if err := h.patientUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "patient deleted successfully"})
}
