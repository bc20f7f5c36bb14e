package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

// SnapshotLoader supplies the complete player/fixture snapshot an analysis
// run operates on.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) ([]models.Player, []models.Fixture, error)
}

type TransferHandler struct {
	store   SnapshotLoader
	scoring analyzer.ScoringConfig
	logger  *logrus.Logger
}

func NewTransferHandler(store SnapshotLoader, scoring analyzer.ScoringConfig, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{
		store:   store,
		scoring: scoring,
		logger:  logger,
	}
}

type analyzeRequest struct {
	SquadIDs     []int    `json:"squad_ids" binding:"required,min=1"`
	CandidateIDs []int    `json:"candidate_ids"`
	GamesAhead   *int     `json:"games_ahead"`
	MinGain      *float64 `json:"min_gain"`
}

// AnalyzeTransfers evaluates every squad member against the candidate pool
// and returns recommendations ordered by net gain. The verdict on each entry
// comes from the scoring core; clients render it as-is.
func (h *TransferHandler) AnalyzeTransfers(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	gamesAhead := h.scoring.DefaultGamesAhead
	if req.GamesAhead != nil {
		gamesAhead = *req.GamesAhead
		if gamesAhead < 1 || gamesAhead > h.scoring.MaxGamesAhead {
			utils.SendValidationError(c, "Invalid games_ahead", "games_ahead must be between 1 and the configured maximum")
			return
		}
	}

	minGain := h.scoring.MinPointGain
	if req.MinGain != nil {
		minGain = *req.MinGain
		if minGain < 0 {
			utils.SendValidationError(c, "Invalid min_gain", "min_gain must not be negative")
			return
		}
	}

	a, err := h.buildAnalyzer(c)
	if err != nil {
		sendAnalysisError(c, err)
		return
	}

	result, err := a.Analyze(req.SquadIDs, req.CandidateIDs, gamesAhead, minGain)
	if err != nil {
		h.logger.Errorf("Transfer analysis failed: %v", err)
		sendAnalysisError(c, err)
		return
	}

	utils.SendSuccess(c, result)
}

// GetReplacements ranks replacements for a single player, defaulting to the
// player's own position group. Pass good_only=true to keep only the moves
// classified GOOD.
func (h *TransferHandler) GetReplacements(c *gin.Context) {
	playerID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	gamesAhead, ok := parseGamesAhead(c, h.scoring.DefaultGamesAhead, h.scoring.MaxGamesAhead)
	if !ok {
		return
	}

	a, err := h.buildAnalyzer(c)
	if err != nil {
		sendAnalysisError(c, err)
		return
	}

	recs, err := a.FindReplacements(playerID, gamesAhead, models.Position(c.Query("position")))
	if err != nil {
		sendAnalysisError(c, err)
		return
	}

	if c.Query("good_only") == "true" {
		recs = analyzer.GoodOnly(recs)
	}

	utils.SendSuccessWithMeta(c, recs, &utils.Meta{Total: int64(len(recs))})
}

func (h *TransferHandler) buildAnalyzer(c *gin.Context) (*analyzer.Analyzer, error) {
	players, fixtures, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return analyzer.New(h.scoring, players, fixtures)
}
