package analyzer

import (
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/config"
)

// ScoringConfig carries every tunable the scoring core uses. It is passed in
// explicitly so the estimator and evaluator stay pure and testable; nothing
// in this package reads global state.
type ScoringConfig struct {
	TransferCost      float64
	MinPointGain      float64
	DefaultGamesAhead int
	MaxGamesAhead     int
	Multipliers       map[models.AvailabilityStatus]float64
}

// DefaultScoringConfig mirrors the in-game rules: 4-point transfer cost and
// a 5-point minimum gain before a move is worth making.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		TransferCost:      4,
		MinPointGain:      5,
		DefaultGamesAhead: 8,
		MaxGamesAhead:     38,
		Multipliers: map[models.AvailabilityStatus]float64{
			models.StatusAvailable: 1.0,
			models.StatusDoubtful:  0.75,
			models.StatusInjured:   0.0,
			models.StatusSuspended: 0.0,
		},
	}
}

// ScoringConfigFrom builds a ScoringConfig from the service configuration.
func ScoringConfigFrom(cfg *config.Config) ScoringConfig {
	sc := DefaultScoringConfig()
	sc.TransferCost = cfg.TransferCost
	sc.MinPointGain = cfg.MinPointGain
	sc.DefaultGamesAhead = cfg.DefaultGamesAhead
	sc.MaxGamesAhead = cfg.MaxGamesAhead
	sc.Multipliers[models.StatusDoubtful] = cfg.DoubtfulMultiplier
	return sc
}

// WithMinGain returns a copy with the minimum-gain threshold replaced.
func (c ScoringConfig) WithMinGain(minGain float64) ScoringConfig {
	c.MinPointGain = minGain
	return c
}

func (c ScoringConfig) multiplier(status models.AvailabilityStatus) float64 {
	if m, ok := c.Multipliers[status]; ok {
		return m
	}
	// Unknown statuses get the doubtful discount rather than a zero.
	return c.Multipliers[models.StatusDoubtful]
}
