package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
)

// ClickService records affiliate link clicks and aggregates them.
type ClickService struct {
	db        *sql.DB
	clickRepo *repository.ClickRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewClickService creates a new ClickService with the provided repository dependencies.
func NewClickService(
	db *sql.DB,
	clickRepo *repository.ClickRepository,
	logger *zap.Logger,
) *ClickService {
	return &ClickService{
		db:        db,
		clickRepo: clickRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// TrackClick appends a click for platformName stamped with the current time.
func (s *ClickService) TrackClick(ctx context.Context, platformName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stat := model.ClickStat{
		PlatformName: platformName,
		Timestamp:    s.now().UnixMilli(),
	}
	if err := s.clickRepo.WithTx(tx).AppendClickStat(ctx, stat); err != nil {
		return fmt.Errorf("failed to track click: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetStats returns totals and per-platform counts computed from the full history.
func (s *ClickService) GetStats(ctx context.Context) (model.ClickStats, error) {
	history, err := s.clickRepo.GetClickStats(ctx)
	if err != nil {
		return model.ClickStats{}, fmt.Errorf("failed to load click history: %w", err)
	}
	return AggregateClicks(history), nil
}

// LogDigest writes a one-line summary of the click statistics.
// It is run on a schedule by the server.
func (s *ClickService) LogDigest(ctx context.Context) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		s.logger.Error("failed to build click digest", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Int("total_clicks", stats.TotalClicks),
		zap.Int("platforms", len(stats.ByPlatform)),
	}
	if top := TopPlatform(stats.ByPlatform); top != nil {
		fields = append(fields, zap.String("top_platform", top.PlatformName), zap.Int("top_clicks", top.Clicks))
	}
	s.logger.Info("click digest", fields...)
}

// AggregateClicks folds history into totals grouped by platform name.
func AggregateClicks(history []model.ClickStat) model.ClickStats {
	byPlatform := make(map[string]int)
	for _, stat := range history {
		byPlatform[stat.PlatformName]++
	}
	if history == nil {
		history = []model.ClickStat{}
	}
	return model.ClickStats{
		TotalClicks: len(history),
		ByPlatform:  byPlatform,
		History:     history,
	}
}

// TopPlatform returns the platform with the most clicks, or nil when there are none.
// Ties are broken alphabetically so the result is stable.
func TopPlatform(byPlatform map[string]int) *model.PlatformCount {
	if len(byPlatform) == 0 {
		return nil
	}

	names := make([]string, 0, len(byPlatform))
	for name := range byPlatform {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byPlatform[names[i]] != byPlatform[names[j]] {
			return byPlatform[names[i]] > byPlatform[names[j]]
		}
		return names[i] < names[j]
	})

	return &model.PlatformCount{PlatformName: names[0], Clicks: byPlatform[names[0]]}
}
