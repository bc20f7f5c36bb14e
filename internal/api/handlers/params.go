package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fpltools/fpl-transfer-analyzer/pkg/utils"
)

// parseGamesAhead reads the games_ahead query parameter, falling back to the
// configured default and rejecting values outside 1..max. Returns false when
// a validation response was already sent.
func parseGamesAhead(c *gin.Context, defaultGames, maxGames int) (int, bool) {
	raw := c.Query("games_ahead")
	if raw == "" {
		return defaultGames, true
	}

	gamesAhead, err := strconv.Atoi(raw)
	if err != nil || gamesAhead < 1 || gamesAhead > maxGames {
		utils.SendValidationError(c, "Invalid games_ahead", fmt.Sprintf("games_ahead must be an integer between 1 and %d", maxGames))
		return 0, false
	}
	return gamesAhead, true
}

// parseIntParam reads a positive integer path parameter.
func parseIntParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 1 {
		utils.SendValidationError(c, fmt.Sprintf("Invalid %s", name), "must be a positive integer")
		return 0, false
	}
	return value, true
}
