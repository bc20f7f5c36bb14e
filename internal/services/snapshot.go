package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/database"
)

// SnapshotStore persists the most recent FPL snapshot in postgres and keeps
// a redis copy in front of it for the hot read path.
type SnapshotStore struct {
	db       *database.DB
	cache    *CacheService
	cacheTTL time.Duration
	logger   *logrus.Logger
}

// PlayerFilter narrows and orders player listings.
type PlayerFilter struct {
	Position  models.Position
	Team      string
	Search    string
	SortBy    string
	SortOrder string
}

var playerSortColumns = map[string]bool{
	"form":                true,
	"total_points":        true,
	"price":               true,
	"selected_by_percent": true,
	"name":                true,
}

func NewSnapshotStore(db *database.DB, cache *CacheService, cacheTTL time.Duration, logger *logrus.Logger) *SnapshotStore {
	return &SnapshotStore{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Replace swaps in a freshly fetched snapshot. Players and fixtures are
// replaced wholesale inside one transaction so readers never observe a
// half-updated snapshot, then the redis copies are invalidated.
func (s *SnapshotStore) Replace(ctx context.Context, players []models.Player, fixtures []models.Fixture) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Player{}).Error; err != nil {
			return fmt.Errorf("failed to clear players: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Fixture{}).Error; err != nil {
			return fmt.Errorf("failed to clear fixtures: %w", err)
		}
		if err := tx.CreateInBatches(players, 500).Error; err != nil {
			return fmt.Errorf("failed to insert players: %w", err)
		}
		if len(fixtures) > 0 {
			if err := tx.CreateInBatches(fixtures, 500).Error; err != nil {
				return fmt.Errorf("failed to insert fixtures: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, PlayersCacheKey(), FixturesCacheKey()); err != nil {
		s.logger.Warnf("Failed to invalidate snapshot cache: %v", err)
	}

	return nil
}

// LoadSnapshot returns the full player and fixture sets for an analysis run,
// preferring the redis copy and falling back to postgres.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]models.Player, []models.Fixture, error) {
	var players []models.Player
	var fixtures []models.Fixture

	playersCached := s.cache.Get(ctx, PlayersCacheKey(), &players) == nil
	fixturesCached := s.cache.Get(ctx, FixturesCacheKey(), &fixtures) == nil

	if !playersCached {
		if err := s.db.WithContext(ctx).Find(&players).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to load players: %w", err)
		}
		if len(players) > 0 {
			s.cache.SetWithRetry(ctx, PlayersCacheKey(), players, s.cacheTTL, 3)
		}
	}
	if !fixturesCached {
		if err := s.db.WithContext(ctx).Find(&fixtures).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		if len(fixtures) > 0 {
			s.cache.SetWithRetry(ctx, FixturesCacheKey(), fixtures, s.cacheTTL, 3)
		}
	}

	if len(players) == 0 {
		return nil, nil, analyzer.ErrDataUnavailable
	}

	return players, fixtures, nil
}

// Players lists snapshot players with optional filters.
func (s *SnapshotStore) Players(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	query := s.db.WithContext(ctx).Model(&models.Player{})

	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.Team != "" {
		query = query.Where("team = ?", filter.Team)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	sortBy := filter.SortBy
	if !playerSortColumns[sortBy] {
		sortBy = "form"
	}
	sortOrder := "desc"
	if filter.SortOrder == "asc" {
		sortOrder = "asc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	var players []models.Player
	if err := query.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	return players, nil
}

// PlayerByID fetches one snapshot player.
func (s *SnapshotStore) PlayerByID(ctx context.Context, id int) (models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Player{}, fmt.Errorf("%w: id %d", analyzer.ErrUnknownPlayer, id)
		}
		return models.Player{}, fmt.Errorf("failed to query player %d: %w", id, err)
	}
	return player, nil
}

// Fixtures lists upcoming fixtures, optionally for one team or gameweek.
func (s *SnapshotStore) Fixtures(ctx context.Context, team string, gameweek int) ([]models.Fixture, error) {
	query := s.db.WithContext(ctx).Model(&models.Fixture{})
	if team != "" {
		query = query.Where("team = ?", team)
	}
	if gameweek > 0 {
		query = query.Where("gameweek = ?", gameweek)
	}

	var fixtures []models.Fixture
	if err := query.Order("gameweek asc").Find(&fixtures).Error; err != nil {
		return nil, fmt.Errorf("failed to query fixtures: %w", err)
	}
	return fixtures, nil
}

// RecordRefresh appends a refresh audit row.
func (s *SnapshotStore) RecordRefresh(ctx context.Context, refresh models.SnapshotRefresh) error {
	if err := s.db.WithContext(ctx).Create(&refresh).Error; err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}
	return nil
}

// LastRefresh returns the most recent refresh attempt, or nil when the
// snapshot has never been fetched.
func (s *SnapshotStore) LastRefresh(ctx context.Context) (*models.SnapshotRefresh, error) {
	var refresh models.SnapshotRefresh
	err := s.db.WithContext(ctx).Order("refreshed_at desc").First(&refresh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query last refresh: %w", err)
	}
	return &refresh, nil
}
