package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/api/handlers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/providers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(
	group *gin.RouterGroup,
	store *services.SnapshotStore,
	cache *services.CacheService,
	client *providers.FPLClient,
	fetcher *services.DataFetcherService,
	scoring analyzer.ScoringConfig,
	logger *logrus.Logger,
) {
	playerHandler := handlers.NewPlayerHandler(store, cache, client, scoring, logger)
	fixtureHandler := handlers.NewFixtureHandler(store, logger)
	transferHandler := handlers.NewTransferHandler(store, scoring, logger)
	managerHandler := handlers.NewManagerHandler(store, cache, client, logger)
	dataHandler := handlers.NewDataHandler(fetcher, logger)

	// Player endpoints
	group.GET("/players", playerHandler.GetPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)
	group.GET("/players/:id/history", playerHandler.GetPlayerHistory)

	// Fixture endpoints
	group.GET("/fixtures", fixtureHandler.GetFixtures)

	// Transfer analysis endpoints
	group.POST("/transfers/analyze", transferHandler.AnalyzeTransfers)
	group.GET("/transfers/replacements/:id", transferHandler.GetReplacements)

	// Manager endpoints
	group.GET("/managers/:id/squad", managerHandler.GetSquad)

	// Snapshot management endpoints
	group.POST("/data/refresh", dataHandler.RefreshData)
	group.GET("/data/status", dataHandler.GetDataStatus)
}
