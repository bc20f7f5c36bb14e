package models

import (
	"time"
)

// Fixture is an upcoming match for a team within the lookahead window. The
// scoring core only counts fixtures per team; the difficulty rating is
// carried through from the API for display but does not weight estimates.
type Fixture struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Gameweek   int       `gorm:"not null;index" json:"gameweek"`
	Team       string    `gorm:"not null;index" json:"team"`
	Opponent   string    `gorm:"not null" json:"opponent"`
	Difficulty int       `json:"difficulty"` // 1 (easiest) to 5 (hardest)
	IsHome     bool      `json:"is_home"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Fixture) TableName() string {
	return "fixtures"
}

// CountByTeam returns how many of the given fixtures each team plays.
func CountByTeam(fixtures []Fixture) map[string]int {
	counts := make(map[string]int, len(fixtures))
	for _, f := range fixtures {
		counts[f.Team]++
	}
	return counts
}
