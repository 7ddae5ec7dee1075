package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

type simulationResponse struct {
	ID          string         `json:"id"`
	Inputs      models.Inputs  `json:"inputs"`
	Results     models.Results `json:"results"`
	DownloadURL string         `json:"download_url,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
}

// CreateSimulation runs a calculation from a JSON body of raw field strings.
func (h *CalculatorHandler) CreateSimulation(c *gin.Context) {
	var raw models.RawInputs
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.logger.Warn("invalid simulation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sim, err := h.svc.Run(c.Request.Context(), raw)
	if err != nil {
		if inputErr, ok := classifyInputError(err, h.svc.Labels()); ok {
			c.JSON(http.StatusUnprocessableEntity, inputErr)
			return
		}
		h.logger.Error("failed running simulation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	resp := simulationResponse{
		ID:          sim.ID,
		Inputs:      sim.Inputs,
		Results:     sim.Results,
		DownloadURL: downloadURL(sim.DownloadToken),
	}
	if !sim.ExpiresAt.IsZero() {
		resp.ExpiresAt = &sim.ExpiresAt
	}
	c.JSON(http.StatusCreated, resp)
}

// DownloadReport streams a rendered report while its token is valid.
func (h *CalculatorHandler) DownloadReport(c *gin.Context) {
	token := c.Param("token")
	download, ok := h.downloads.Get(token)
	if !ok {
		c.String(http.StatusNotFound, "report not found or expired")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, download.ContentType, download.Content)
}
