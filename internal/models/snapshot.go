package models

import (
	"time"
)

// SnapshotRefresh records one attempt to refresh the FPL snapshot, for the
// data-status endpoint and for debugging stale data.
type SnapshotRefresh struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RefreshedAt  time.Time `gorm:"not null;index" json:"refreshed_at"`
	PlayerCount  int       `json:"player_count"`
	FixtureCount int       `json:"fixture_count"`
	Success      bool      `gorm:"not null" json:"success"`
	Error        string    `json:"error,omitempty"`
}

func (SnapshotRefresh) TableName() string {
	return "snapshot_refreshes"
}
