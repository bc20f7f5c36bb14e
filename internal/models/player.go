package models

import (
	"time"
)

// AvailabilityStatus is the normalized availability of a player.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "AVAILABLE"
	StatusDoubtful  AvailabilityStatus = "DOUBTFUL"
	StatusInjured   AvailabilityStatus = "INJURED"
	StatusSuspended AvailabilityStatus = "SUSPENDED"
)

// ParseAvailabilityStatus maps the single-letter status codes the FPL API
// uses onto the normalized enum. Players flagged unavailable or ineligible
// ("u", "n") cannot play, so they are treated like suspensions. Codes we have
// never seen map to DOUBTFUL rather than zeroing the player out.
func ParseAvailabilityStatus(code string) AvailabilityStatus {
	switch code {
	case "a", "":
		return StatusAvailable
	case "d":
		return StatusDoubtful
	case "i":
		return StatusInjured
	case "s", "u", "n":
		return StatusSuspended
	default:
		return StatusDoubtful
	}
}

// CanPlay reports whether the player is expected to feature at all.
func (s AvailabilityStatus) CanPlay() bool {
	return s == StatusAvailable || s == StatusDoubtful
}

// Position is one of the four FPL position groups.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// ParsePosition converts the FPL element_type id to a position group.
func ParsePosition(elementType int) Position {
	switch elementType {
	case 1:
		return PositionGoalkeeper
	case 2:
		return PositionDefender
	case 3:
		return PositionMidfielder
	case 4:
		return PositionForward
	default:
		return ""
	}
}

// Player is one row of the FPL element snapshot. Rows are replaced wholesale
// on each refresh and treated as immutable within an analysis run.
type Player struct {
	ID                int                `gorm:"primaryKey" json:"id"` // FPL element id
	Name              string             `gorm:"not null" json:"name"`
	Team              string             `gorm:"not null;index" json:"team"`
	Position          Position           `gorm:"not null;index;size:3" json:"position"`
	Price             int                `json:"price"` // tenths of £m, e.g. 50 = £5.0m
	TotalPoints       int                `json:"total_points"`
	GamesPlayed       int                `json:"games_played"`
	SelectedByPercent float64            `json:"selected_by_percent"`
	Form              float64            `gorm:"not null" json:"form"` // recent average points per game, >= 0
	ChanceOfPlaying   *int               `json:"chance_of_playing,omitempty"`
	Status            AvailabilityStatus `gorm:"not null;size:10" json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

// PriceMillions returns the price in £m.
func (p Player) PriceMillions() float64 {
	return float64(p.Price) / 10.0
}
