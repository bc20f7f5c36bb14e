package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
	"github.com/fpltools/fpl-transfer-analyzer/internal/providers"
)

// DataFetcherService keeps the local snapshot in step with the FPL API on a
// cron schedule, and supports on-demand refreshes from the API surface.
type DataFetcherService struct {
	client        *providers.FPLClient
	store         *SnapshotStore
	logger        *logrus.Logger
	cron          *cron.Cron
	mu            sync.Mutex
	isRunning     bool
	fetchInterval time.Duration
}

// NewDataFetcherService creates a new data fetcher service.
func NewDataFetcherService(
	client *providers.FPLClient,
	store *SnapshotStore,
	logger *logrus.Logger,
	fetchInterval time.Duration,
) *DataFetcherService {
	return &DataFetcherService{
		client:        client,
		store:         store,
		logger:        logger,
		cron:          cron.New(),
		fetchInterval: fetchInterval,
	}
}

// Start begins the scheduled snapshot refresh and runs an initial fetch in
// the background.
func (s *DataFetcherService) Start(initialFetch bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("data fetcher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.fetchInterval.String())
	_, err := s.cron.AddFunc(schedule, s.scheduledRefresh)
	if err != nil {
		return fmt.Errorf("failed to schedule data fetcher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if initialFetch {
		go s.scheduledRefresh()
	}

	s.logger.Info("Data fetcher service started")
	return nil
}

// Stop halts the scheduled refreshes.
func (s *DataFetcherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Data fetcher service stopped")
}

func (s *DataFetcherService) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Errorf("Scheduled snapshot refresh failed: %v", err)
	}
}

// Refresh fetches a fresh snapshot from the FPL API and swaps it into the
// store. Every attempt is recorded for the status endpoint, including
// failures.
func (s *DataFetcherService) Refresh(ctx context.Context) error {
	s.logger.Info("Starting FPL snapshot refresh")
	start := time.Now()

	players, fixtures, err := s.client.GetSnapshot(ctx)
	if err != nil {
		s.recordRefresh(ctx, models.SnapshotRefresh{
			RefreshedAt: start,
			Success:     false,
			Error:       err.Error(),
		})
		return fmt.Errorf("snapshot fetch failed: %w", err)
	}

	if err := s.store.Replace(ctx, players, fixtures); err != nil {
		s.recordRefresh(ctx, models.SnapshotRefresh{
			RefreshedAt: start,
			Success:     false,
			Error:       err.Error(),
		})
		return fmt.Errorf("snapshot store failed: %w", err)
	}

	s.recordRefresh(ctx, models.SnapshotRefresh{
		RefreshedAt:  start,
		PlayerCount:  len(players),
		FixtureCount: len(fixtures),
		Success:      true,
	})

	s.logger.WithFields(logrus.Fields{
		"players":  len(players),
		"fixtures": len(fixtures),
		"duration": time.Since(start).String(),
	}).Info("Completed FPL snapshot refresh")

	return nil
}

// Status summarizes the fetcher for the data-status endpoint.
func (s *DataFetcherService) Status(ctx context.Context) (map[string]interface{}, error) {
	last, err := s.store.LastRefresh(ctx)
	if err != nil {
		return nil, err
	}

	status := map[string]interface{}{
		"running":        s.running(),
		"fetch_interval": s.fetchInterval.String(),
		"breaker_state":  s.client.BreakerState(),
	}
	if last != nil {
		status["last_refresh"] = last
	}
	return status, nil
}

func (s *DataFetcherService) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *DataFetcherService) recordRefresh(ctx context.Context, refresh models.SnapshotRefresh) {
	if err := s.store.RecordRefresh(ctx, refresh); err != nil {
		s.logger.Warnf("Failed to record snapshot refresh: %v", err)
	}
}
