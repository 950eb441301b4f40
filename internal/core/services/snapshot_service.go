package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type snapshotService struct {
	resultRepo ports.ResultRepository
	results    ports.ResultService
	logger     *slog.Logger
	now        func() time.Time
}

func NewSnapshotService(resultRepo ports.ResultRepository, results ports.ResultService, logger *slog.Logger) ports.SnapshotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &snapshotService{
		resultRepo: resultRepo,
		results:    results,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateDueResults stores the final tabulation for every election whose
// voting window has closed without a snapshot yet. Elections are processed
// concurrently; the first failure is reported after all finish.
func (s *snapshotService) GenerateDueResults(ctx context.Context) error {
	elections, err := s.resultRepo.ListEndedWithoutSnapshot(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to list ended elections: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(elections))

	for _, election := range elections {
		wg.Add(1)
		go func(election *domain.Election) {
			defer wg.Done()
			if err := s.snapshot(ctx, election); err != nil {
				errChan <- fmt.Errorf("failed to snapshot election %s: %w", election.Slug, err)
			}
		}(election)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *snapshotService) snapshot(ctx context.Context, election *domain.Election) error {
	// The election has ended, so the realtime view is already the full,
	// named, uncut tally.
	results, err := s.results.GetRealtimeResults(ctx, election.Slug)
	if err != nil {
		return err
	}
	if err := s.resultRepo.SaveSnapshot(ctx, election.ID, results); err != nil {
		return err
	}

	s.logger.Info("stored final election results", "election", election.Slug)
	return nil
}
