package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

type FixtureHandler struct {
	store  *services.SnapshotStore
	logger *logrus.Logger
}

func NewFixtureHandler(store *services.SnapshotStore, logger *logrus.Logger) *FixtureHandler {
	return &FixtureHandler{
		store:  store,
		logger: logger,
	}
}

// GetFixtures lists upcoming fixtures, optionally filtered by team or
// gameweek.
func (h *FixtureHandler) GetFixtures(c *gin.Context) {
	gameweek := 0
	if raw := c.Query("gameweek"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 38 {
			utils.SendValidationError(c, "Invalid gameweek", "gameweek must be an integer between 1 and 38")
			return
		}
		gameweek = parsed
	}

	fixtures, err := h.store.Fixtures(c.Request.Context(), c.Query("team"), gameweek)
	if err != nil {
		h.logger.Errorf("Failed to list fixtures: %v", err)
		utils.SendInternalError(c, "Failed to fetch fixtures")
		return
	}

	utils.SendSuccessWithMeta(c, fixtures, &utils.Meta{Total: int64(len(fixtures))})
}
