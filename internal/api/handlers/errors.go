package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

// sendAnalysisError maps the scoring core's sentinel errors onto API
// responses. Anything unrecognized is an internal error.
func sendAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analyzer.ErrDataUnavailable):
		utils.SendDataUnavailable(c, "Player data has not been fetched yet")
	case errors.Is(err, analyzer.ErrUnknownPlayer):
		utils.SendError(c, http.StatusNotFound, utils.NewAppError(utils.ErrCodeUnknownPlayer, "Player not found", err.Error()))
	case errors.Is(err, analyzer.ErrInvalidInput):
		utils.SendError(c, http.StatusBadRequest, utils.NewAppError(utils.ErrCodeInvalidInput, "Invalid analysis input", err.Error()))
	default:
		utils.SendInternalError(c, "Analysis failed")
	}
}
