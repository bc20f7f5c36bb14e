package analyzer

import (
	"fmt"
	"sort"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

// Analyzer runs transfer comparisons against one loaded snapshot of players
// and fixtures. Each analysis works on its own in-memory copy, so there is
// no shared mutable state and no locking.
type Analyzer struct {
	cfg         ScoringConfig
	players     map[int]models.Player
	gamesByTeam map[string]int // nil when no fixture data was supplied
}

// AnalysisResult is the ordered outcome of a batch analysis. Squad or
// candidate ids missing from the snapshot abort only their own comparisons
// and are reported in UnknownPlayers.
type AnalysisResult struct {
	Recommendations []models.TransferRecommendation `json:"recommendations"`
	UnknownPlayers  []int                           `json:"unknown_players,omitempty"`
}

// New builds an Analyzer over a complete player snapshot. Fixtures are
// optional; when present, a player's horizon is capped at the number of
// fixtures their team actually has in the window.
func New(cfg ScoringConfig, players []models.Player, fixtures []models.Fixture) (*Analyzer, error) {
	if len(players) == 0 {
		return nil, ErrDataUnavailable
	}

	byID := make(map[int]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var gamesByTeam map[string]int
	if len(fixtures) > 0 {
		gamesByTeam = models.CountByTeam(fixtures)
	}

	return &Analyzer{
		cfg:         cfg,
		players:     byID,
		gamesByTeam: gamesByTeam,
	}, nil
}

// Config returns the scoring configuration the analyzer was built with.
func (a *Analyzer) Config() ScoringConfig {
	return a.cfg
}

// Player looks up a snapshot player by FPL element id.
func (a *Analyzer) Player(id int) (models.Player, error) {
	p, ok := a.players[id]
	if !ok {
		return models.Player{}, fmt.Errorf("%w: id %d", ErrUnknownPlayer, id)
	}
	return p, nil
}

// horizon clamps the requested lookahead to the configured maximum and, when
// fixture data is loaded, to the number of games the player's team has left
// in the window.
func (a *Analyzer) horizon(p models.Player, gamesAhead int) int {
	if gamesAhead > a.cfg.MaxGamesAhead {
		gamesAhead = a.cfg.MaxGamesAhead
	}
	if a.gamesByTeam != nil {
		if n := a.gamesByTeam[p.Team]; n < gamesAhead {
			gamesAhead = n
		}
	}
	return gamesAhead
}

// EstimatePlayer projects expected points for one snapshot player.
func (a *Analyzer) EstimatePlayer(p models.Player, gamesAhead int) float64 {
	return a.cfg.Estimate(p, a.horizon(p, gamesAhead))
}

// Compare evaluates transferring out one player for another.
func (a *Analyzer) Compare(outID, inID, gamesAhead int) (models.TransferRecommendation, error) {
	out, err := a.Player(outID)
	if err != nil {
		return models.TransferRecommendation{}, err
	}
	in, err := a.Player(inID)
	if err != nil {
		return models.TransferRecommendation{}, err
	}

	rec, err := a.cfg.Evaluate(a.EstimatePlayer(out, gamesAhead), a.EstimatePlayer(in, gamesAhead))
	if err != nil {
		return models.TransferRecommendation{}, err
	}
	rec.PlayerOut = out
	rec.PlayerIn = in
	rec.GamesAhead = gamesAhead
	return rec, nil
}

// FindReplacements ranks every candidate as a replacement for the given
// player. Candidates default to the player's own position group; pass a
// position to widen or switch the pool. Results are sorted by net gain
// descending, ties broken by candidate id for deterministic output.
func (a *Analyzer) FindReplacements(currentID, gamesAhead int, position models.Position) ([]models.TransferRecommendation, error) {
	current, err := a.Player(currentID)
	if err != nil {
		return nil, err
	}
	if position == "" {
		position = current.Position
	}

	currentXP := a.EstimatePlayer(current, gamesAhead)

	recs := make([]models.TransferRecommendation, 0, 64)
	for _, candidate := range a.players {
		if candidate.ID == current.ID || candidate.Position != position {
			continue
		}
		rec, err := a.cfg.Evaluate(currentXP, a.EstimatePlayer(candidate, gamesAhead))
		if err != nil {
			return nil, err
		}
		rec.PlayerOut = current
		rec.PlayerIn = candidate
		rec.GamesAhead = gamesAhead
		recs = append(recs, rec)
	}

	sortRecommendations(recs)
	return recs, nil
}

// Analyze produces an ordered recommendation list for a whole squad. An
// empty candidate pool means "everyone in the same position group"; an
// explicit pool is used as-is regardless of position. minGain overrides the
// configured threshold for this call only.
func (a *Analyzer) Analyze(squadIDs, candidateIDs []int, gamesAhead int, minGain float64) (*AnalysisResult, error) {
	run := *a
	run.cfg = a.cfg.WithMinGain(minGain)

	result := &AnalysisResult{}

	inSquad := make(map[int]bool, len(squadIDs))
	for _, id := range squadIDs {
		inSquad[id] = true
	}

	// Resolve the explicit candidate pool up front so unknown ids surface
	// once instead of once per squad member.
	var pool []models.Player
	if len(candidateIDs) > 0 {
		pool = make([]models.Player, 0, len(candidateIDs))
		for _, id := range candidateIDs {
			p, err := run.Player(id)
			if err != nil {
				result.UnknownPlayers = append(result.UnknownPlayers, id)
				continue
			}
			pool = append(pool, p)
		}
	}

	for _, outID := range squadIDs {
		out, err := run.Player(outID)
		if err != nil {
			result.UnknownPlayers = append(result.UnknownPlayers, outID)
			continue
		}

		if pool == nil {
			recs, err := run.FindReplacements(outID, gamesAhead, "")
			if err != nil {
				return nil, err
			}
			for _, rec := range recs {
				if !inSquad[rec.PlayerIn.ID] {
					result.Recommendations = append(result.Recommendations, rec)
				}
			}
			continue
		}

		currentXP := run.EstimatePlayer(out, gamesAhead)
		for _, candidate := range pool {
			if candidate.ID == out.ID || inSquad[candidate.ID] {
				continue
			}
			rec, err := run.cfg.Evaluate(currentXP, run.EstimatePlayer(candidate, gamesAhead))
			if err != nil {
				return nil, err
			}
			rec.PlayerOut = out
			rec.PlayerIn = candidate
			rec.GamesAhead = gamesAhead
			result.Recommendations = append(result.Recommendations, rec)
		}
	}

	sortRecommendations(result.Recommendations)
	sort.Ints(result.UnknownPlayers)
	return result, nil
}

// GoodOnly keeps the recommendations classified GOOD, preserving order.
func GoodOnly(recs []models.TransferRecommendation) []models.TransferRecommendation {
	good := make([]models.TransferRecommendation, 0, len(recs))
	for _, rec := range recs {
		if rec.Verdict == models.VerdictGood {
			good = append(good, rec)
		}
	}
	return good
}

func sortRecommendations(recs []models.TransferRecommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].NetGain != recs[j].NetGain {
			return recs[i].NetGain > recs[j].NetGain
		}
		return recs[i].PlayerIn.ID < recs[j].PlayerIn.ID
	})
}
