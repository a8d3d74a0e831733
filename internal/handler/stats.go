package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Report(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("stats report failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
