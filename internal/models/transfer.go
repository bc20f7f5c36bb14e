package models

// Verdict is the three-way classification of a proposed transfer.
type Verdict string

const (
	VerdictGood    Verdict = "GOOD"
	VerdictNeutral Verdict = "NEUTRAL"
	VerdictBad     Verdict = "BAD"
)

// TransferRecommendation compares one owned player against one candidate
// over a games-ahead horizon. Recommendations are computed per request and
// never persisted; the verdict is assigned by the analyzer and is the single
// source of truth for the GOOD/NEUTRAL/BAD decision.
type TransferRecommendation struct {
	PlayerOut    Player  `json:"player_out"`
	PlayerIn     Player  `json:"player_in"`
	GamesAhead   int     `json:"games_ahead"`
	CurrentXP    float64 `json:"current_xp"`   // expected points forfeited by selling
	CandidateXP  float64 `json:"candidate_xp"` // expected points gained by buying
	TransferCost float64 `json:"transfer_cost"`
	NetGain      float64 `json:"net_gain"`
	Verdict      Verdict `json:"verdict"`
}
