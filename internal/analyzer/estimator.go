package analyzer

import (
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

// Estimate projects a player's expected points over the next gamesAhead
// games: recent form (average points per game) scaled by the horizon, then
// discounted by availability. A player with no recorded form projects zero
// points; that is FPL's "no data" signal, not an error. The result is never
// negative and is non-decreasing in gamesAhead.
func (c ScoringConfig) Estimate(p models.Player, gamesAhead int) float64 {
	if gamesAhead <= 0 {
		return 0
	}
	if p.Form <= 0 {
		return 0
	}
	return p.Form * float64(gamesAhead) * c.multiplier(p.Status)
}
