package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

type DataHandler struct {
	fetcher *services.DataFetcherService
	logger  *logrus.Logger
}

func NewDataHandler(fetcher *services.DataFetcherService, logger *logrus.Logger) *DataHandler {
	return &DataHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// RefreshData triggers an immediate snapshot refresh.
func (h *DataHandler) RefreshData(c *gin.Context) {
	if err := h.fetcher.Refresh(c.Request.Context()); err != nil {
		h.logger.Errorf("Manual snapshot refresh failed: %v", err)
		utils.SendDataUnavailable(c, "Snapshot refresh failed")
		return
	}

	status, err := h.fetcher.Status(c.Request.Context())
	if err != nil {
		utils.SendSuccess(c, gin.H{"refreshed": true})
		return
	}
	utils.SendSuccess(c, status)
}

// GetDataStatus reports the last refresh and the upstream breaker state.
func (h *DataHandler) GetDataStatus(c *gin.Context) {
	status, err := h.fetcher.Status(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to read data status: %v", err)
		utils.SendInternalError(c, "Failed to read data status")
		return
	}
	utils.SendSuccess(c, status)
}
