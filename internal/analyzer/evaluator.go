package analyzer

import (
	"errors"
	"fmt"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

var (
	// ErrInvalidInput flags a negative estimate or transfer cost reaching the
	// evaluator. Estimates are non-negative by construction, so this is an
	// upstream bug and is surfaced as a hard failure rather than clamped.
	ErrInvalidInput = errors.New("invalid evaluator input")

	// ErrUnknownPlayer flags a player id absent from the loaded snapshot.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrDataUnavailable flags an empty or failed snapshot load.
	ErrDataUnavailable = errors.New("player data unavailable")
)

// Evaluate compares two expected-point estimates net of the transfer cost.
// netGain = candidateXP - currentXP - TransferCost. Deterministic: identical
// inputs always produce the identical recommendation.
func (c ScoringConfig) Evaluate(currentXP, candidateXP float64) (models.TransferRecommendation, error) {
	if currentXP < 0 || candidateXP < 0 {
		return models.TransferRecommendation{}, fmt.Errorf("%w: negative estimate (current=%v candidate=%v)", ErrInvalidInput, currentXP, candidateXP)
	}
	if c.TransferCost < 0 {
		return models.TransferRecommendation{}, fmt.Errorf("%w: negative transfer cost %v", ErrInvalidInput, c.TransferCost)
	}

	netGain := candidateXP - currentXP - c.TransferCost
	return models.TransferRecommendation{
		CurrentXP:    currentXP,
		CandidateXP:  candidateXP,
		TransferCost: c.TransferCost,
		NetGain:      netGain,
		Verdict:      c.Classify(netGain),
	}, nil
}

// Classify maps a net gain onto the three-way verdict. The thresholds form a
// total order: at or above MinPointGain the move is GOOD, any non-negative
// gain below that is NEUTRAL, and a net loss is BAD.
func (c ScoringConfig) Classify(netGain float64) models.Verdict {
	switch {
	case netGain >= c.MinPointGain:
		return models.VerdictGood
	case netGain >= 0:
		return models.VerdictNeutral
	default:
		return models.VerdictBad
	}
}
