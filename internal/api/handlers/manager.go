package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/internal/providers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

type ManagerHandler struct {
	store  *services.SnapshotStore
	cache  *services.CacheService
	client *providers.FPLClient
	logger *logrus.Logger
}

func NewManagerHandler(store *services.SnapshotStore, cache *services.CacheService, client *providers.FPLClient, logger *logrus.Logger) *ManagerHandler {
	return &ManagerHandler{
		store:  store,
		cache:  cache,
		client: client,
		logger: logger,
	}
}

// GetSquad loads a manager's picks for a gameweek from the FPL API and
// resolves them against the local snapshot, so the response can feed
// straight into a transfer analysis.
func (h *ManagerHandler) GetSquad(c *gin.Context) {
	managerID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	gameweek, err := strconv.Atoi(c.Query("gameweek"))
	if err != nil || gameweek < 1 || gameweek > 38 {
		utils.SendValidationError(c, "Invalid gameweek", "gameweek is required and must be between 1 and 38")
		return
	}

	cacheKey := services.ManagerSquadCacheKey(managerID, gameweek)
	var squadIDs []int
	if err := h.cache.Get(c.Request.Context(), cacheKey, &squadIDs); err != nil {
		squadIDs, err = h.client.GetManagerSquad(c.Request.Context(), managerID, gameweek)
		if err != nil {
			h.logger.Errorf("Failed to fetch squad for manager %d: %v", managerID, err)
			utils.SendDataUnavailable(c, "Failed to fetch squad from the FPL API")
			return
		}
		h.cache.SetWithRetry(c.Request.Context(), cacheKey, squadIDs, 10*time.Minute, 3)
	}

	players := make([]models.Player, 0, len(squadIDs))
	missing := make([]int, 0)
	for _, id := range squadIDs {
		player, err := h.store.PlayerByID(c.Request.Context(), id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		players = append(players, player)
	}

	utils.SendSuccess(c, gin.H{
		"manager_id": managerID,
		"gameweek":   gameweek,
		"squad":      players,
		"missing":    missing,
	})
}
