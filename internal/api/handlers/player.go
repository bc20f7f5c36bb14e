package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/internal/providers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

type PlayerHandler struct {
	store   *services.SnapshotStore
	cache   *services.CacheService
	client  *providers.FPLClient
	scoring analyzer.ScoringConfig
	logger  *logrus.Logger
}

func NewPlayerHandler(store *services.SnapshotStore, cache *services.CacheService, client *providers.FPLClient, scoring analyzer.ScoringConfig, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		store:   store,
		cache:   cache,
		client:  client,
		scoring: scoring,
		logger:  logger,
	}
}

// GetPlayers returns the player snapshot with optional filtering.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	filter := services.PlayerFilter{
		Position:  models.Position(c.Query("position")),
		Team:      c.Query("team"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "form"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	players, err := h.store.Players(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("Failed to list players: %v", err)
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}
	if len(players) == 0 && filter.Position == "" && filter.Team == "" && filter.Search == "" {
		utils.SendDataUnavailable(c, "Player data has not been fetched yet")
		return
	}

	utils.SendSuccessWithMeta(c, players, &utils.Meta{Total: int64(len(players))})
}

// GetPlayer returns a single player. When games_ahead is supplied the
// response also carries the expected-points projection for that horizon.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	player, err := h.store.PlayerByID(c.Request.Context(), playerID)
	if err != nil {
		sendAnalysisError(c, err)
		return
	}

	if c.Query("games_ahead") == "" {
		utils.SendSuccess(c, player)
		return
	}

	gamesAhead, ok := parseGamesAhead(c, h.scoring.DefaultGamesAhead, h.scoring.MaxGamesAhead)
	if !ok {
		return
	}

	utils.SendSuccess(c, gin.H{
		"player":          player,
		"games_ahead":     gamesAhead,
		"expected_points": h.scoring.Estimate(player, gamesAhead),
	})
}

// GetPlayerHistory proxies the per-gameweek history from the FPL API,
// cached to keep repeat lookups off the upstream.
func (h *PlayerHandler) GetPlayerHistory(c *gin.Context) {
	playerID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	// The snapshot is the source of truth for which players exist.
	if _, err := h.store.PlayerByID(c.Request.Context(), playerID); err != nil {
		sendAnalysisError(c, err)
		return
	}

	cacheKey := services.PlayerHistoryCacheKey(playerID)
	var history json.RawMessage
	if err := h.cache.Get(c.Request.Context(), cacheKey, &history); err == nil {
		utils.SendSuccess(c, history)
		return
	}

	history, err := h.client.GetPlayerHistory(c.Request.Context(), playerID)
	if err != nil {
		h.logger.Errorf("Failed to fetch history for player %d: %v", playerID, err)
		utils.SendDataUnavailable(c, "Failed to fetch player history from the FPL API")
		return
	}

	h.cache.SetWithRetry(c.Request.Context(), cacheKey, history, 15*time.Minute, 3)
	utils.SendSuccess(c, history)
}
