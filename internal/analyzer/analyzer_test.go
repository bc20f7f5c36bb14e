package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

func midfielder(id int, form float64) models.Player {
	return models.Player{
		ID:       id,
		Name:     "Player",
		Team:     "TST",
		Position: models.PositionMidfielder,
		Form:     form,
		Status:   models.StatusAvailable,
	}
}

func TestNewRequiresPlayers(t *testing.T) {
	_, err := New(DefaultScoringConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestAnalyzeOrdering(t *testing.T) {
	cfg := DefaultScoringConfig()

	// Over one game with a cost of 4, a current player with form 1 makes the
	// candidate net gains: form - 1 - 4.
	players := []models.Player{
		midfielder(1, 1.0),   // current
		midfielder(10, 8.0),  // net gain 3
		midfielder(11, 12.0), // net gain 7
		midfielder(12, 4.0),  // net gain -1
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	result, err := a.Analyze([]int{1}, nil, 1, cfg.MinPointGain)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 3)

	gains := []float64{
		result.Recommendations[0].NetGain,
		result.Recommendations[1].NetGain,
		result.Recommendations[2].NetGain,
	}
	assert.Equal(t, []float64{7, 3, -1}, gains)
	assert.Empty(t, result.UnknownPlayers)
}

func TestAnalyzeTieBreakByCandidateID(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 1.0),
		midfielder(30, 6.0),
		midfielder(20, 6.0),
		midfielder(25, 6.0),
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	result, err := a.Analyze([]int{1}, nil, 1, cfg.MinPointGain)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 3)

	ids := []int{
		result.Recommendations[0].PlayerIn.ID,
		result.Recommendations[1].PlayerIn.ID,
		result.Recommendations[2].PlayerIn.ID,
	}
	assert.Equal(t, []int{20, 25, 30}, ids)
}

func TestAnalyzeUnknownPlayersSkipNotAbort(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 2.0),
		midfielder(2, 9.0),
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	// Unknown squad member 99 aborts only its own comparisons.
	result, err := a.Analyze([]int{1, 99}, nil, 1, cfg.MinPointGain)
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, []int{99}, result.UnknownPlayers)

	// Unknown candidate 98 is reported once and the rest of the pool is used.
	result, err = a.Analyze([]int{1}, []int{2, 98}, 1, cfg.MinPointGain)
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, []int{98}, result.UnknownPlayers)
}

func TestAnalyzeExcludesSquadMembersFromPool(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 2.0),
		midfielder(2, 9.0),
		midfielder(3, 5.0),
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	result, err := a.Analyze([]int{1, 2}, nil, 1, cfg.MinPointGain)
	require.NoError(t, err)

	for _, rec := range result.Recommendations {
		assert.NotEqual(t, 1, rec.PlayerIn.ID)
		assert.NotEqual(t, 2, rec.PlayerIn.ID)
	}
}

func TestAnalyzeMinGainOverride(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 1.0),
		midfielder(2, 8.0), // net gain 3 over one game
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	result, err := a.Analyze([]int{1}, nil, 1, cfg.MinPointGain)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, models.VerdictNeutral, result.Recommendations[0].Verdict)

	// Lowering the threshold for one call flips the same move to GOOD.
	result, err = a.Analyze([]int{1}, nil, 1, 3)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, models.VerdictGood, result.Recommendations[0].Verdict)
}

func TestFindReplacementsSamePositionByDefault(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 2.0),
		midfielder(2, 9.0),
		{ID: 3, Team: "TST", Position: models.PositionForward, Form: 9.0, Status: models.StatusAvailable},
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	recs, err := a.FindReplacements(1, 8, "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].PlayerIn.ID)

	// Widening to forwards swaps the pool entirely.
	recs, err = a.FindReplacements(1, 8, models.PositionForward)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].PlayerIn.ID)
}

func TestFindReplacementsUnknownPlayer(t *testing.T) {
	a, err := New(DefaultScoringConfig(), []models.Player{midfielder(1, 2.0)}, nil)
	require.NoError(t, err)

	_, err = a.FindReplacements(42, 8, "")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestHorizonCappedByTeamFixtures(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 2.0),
	}
	fixtures := []models.Fixture{
		{Gameweek: 1, Team: "TST", Opponent: "OPP", IsHome: true},
		{Gameweek: 2, Team: "TST", Opponent: "OPP", IsHome: false},
	}

	a, err := New(cfg, players, fixtures)
	require.NoError(t, err)

	// Only two games left: an 8-game request projects over 2.
	p, err := a.Player(1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, a.EstimatePlayer(p, 8))

	// A team with no remaining fixtures projects nothing.
	ghost := midfielder(2, 5.0)
	ghost.Team = "GON"
	b, err := New(cfg, []models.Player{players[0], ghost}, fixtures)
	require.NoError(t, err)
	gp, err := b.Player(2)
	require.NoError(t, err)
	assert.Zero(t, b.EstimatePlayer(gp, 8))
}

func TestCompare(t *testing.T) {
	cfg := DefaultScoringConfig()

	players := []models.Player{
		midfielder(1, 2.0),
		midfielder(2, 3.25),
	}

	a, err := New(cfg, players, nil)
	require.NoError(t, err)

	rec, err := a.Compare(1, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PlayerOut.ID)
	assert.Equal(t, 2, rec.PlayerIn.ID)
	assert.Equal(t, 8, rec.GamesAhead)
	assert.InDelta(t, 6.0, rec.NetGain, 1e-9)
	assert.Equal(t, models.VerdictGood, rec.Verdict)

	_, err = a.Compare(1, 404, 8)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestGoodOnly(t *testing.T) {
	recs := []models.TransferRecommendation{
		{NetGain: 7, Verdict: models.VerdictGood},
		{NetGain: 3, Verdict: models.VerdictNeutral},
		{NetGain: 6, Verdict: models.VerdictGood},
		{NetGain: -1, Verdict: models.VerdictBad},
	}

	good := GoodOnly(recs)
	require.Len(t, good, 2)
	assert.Equal(t, 7.0, good[0].NetGain)
	assert.Equal(t, 6.0, good[1].NetGain)
}
