package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

type stubLoader struct {
	players  []models.Player
	fixtures []models.Fixture
	err      error
}

func (s *stubLoader) LoadSnapshot(ctx context.Context) ([]models.Player, []models.Fixture, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.players, s.fixtures, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *utils.AppError `json:"error"`
}

func newTransferRouter(loader *stubLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	h := NewTransferHandler(loader, analyzer.DefaultScoringConfig(), logger)
	router := gin.New()
	router.POST("/transfers/analyze", h.AnalyzeTransfers)
	router.GET("/transfers/replacements/:id", h.GetReplacements)
	return router
}

func testPlayers() []models.Player {
	mk := func(id int, form float64) models.Player {
		return models.Player{
			ID:       id,
			Name:     "Player",
			Team:     "TST",
			Position: models.PositionMidfielder,
			Form:     form,
			Status:   models.StatusAvailable,
		}
	}
	return []models.Player{mk(1, 1.0), mk(10, 8.0), mk(11, 12.0), mk(12, 4.0)}
}

func postAnalyze(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/transfers/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeTransfersOrdering(t *testing.T) {
	router := newTransferRouter(&stubLoader{players: testPlayers()})

	w := postAnalyze(t, router, `{"squad_ids": [1], "games_ahead": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var result analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, 7.0, result.Recommendations[0].NetGain)
	assert.Equal(t, 3.0, result.Recommendations[1].NetGain)
	assert.Equal(t, -1.0, result.Recommendations[2].NetGain)
	assert.Equal(t, models.VerdictGood, result.Recommendations[0].Verdict)
}

func TestAnalyzeTransfersValidation(t *testing.T) {
	router := newTransferRouter(&stubLoader{players: testPlayers()})

	tests := []struct {
		name string
		body string
	}{
		{"missing squad_ids", `{}`},
		{"empty squad_ids", `{"squad_ids": []}`},
		{"games_ahead too small", `{"squad_ids": [1], "games_ahead": 0}`},
		{"games_ahead too large", `{"squad_ids": [1], "games_ahead": 39}`},
		{"negative min_gain", `{"squad_ids": [1], "min_gain": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAnalyze(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, utils.ErrCodeValidation, resp.Error.Code)
		})
	}
}

func TestAnalyzeTransfersDataUnavailable(t *testing.T) {
	router := newTransferRouter(&stubLoader{err: analyzer.ErrDataUnavailable})

	w := postAnalyze(t, router, `{"squad_ids": [1]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeDataUnavailable, resp.Error.Code)
}

func TestGetReplacementsUnknownPlayer(t *testing.T) {
	router := newTransferRouter(&stubLoader{players: testPlayers()})

	req := httptest.NewRequest(http.MethodGet, "/transfers/replacements/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeUnknownPlayer, resp.Error.Code)
}

func TestGetReplacementsGoodOnly(t *testing.T) {
	router := newTransferRouter(&stubLoader{players: testPlayers()})

	req := httptest.NewRequest(http.MethodGet, "/transfers/replacements/1?games_ahead=1&good_only=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var recs []models.TransferRecommendation
	require.NoError(t, json.Unmarshal(resp.Data, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, 11, recs[0].PlayerIn.ID)
	assert.Equal(t, models.VerdictGood, recs[0].Verdict)
}
