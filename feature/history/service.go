package history

import (
	"context"
	"time"

	"schema-provisioner/core/provision"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service persists and lists provisioning run outcomes.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new history service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates the runs table if it does not exist.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&Run{})
}

// Record stores the outcome of one provisioning run.
func (s *Service) Record(ctx context.Context, result *provision.Result, startedAt time.Time, duration time.Duration) (*Run, error) {
	run := &Run{
		ID:           uuid.NewString(),
		StartedAt:    startedAt,
		DurationMs:   duration.Milliseconds(),
		Success:      result.Success,
		CreatedCount: len(result.Created),
		SkippedCount: len(result.Skipped),
		ErrorCount:   len(result.Errors),
		Summary:      result.Summary,
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}

	s.logger.Info("Recorded provisioning run",
		zap.String("run_id", run.ID),
		zap.Bool("success", run.Success),
	)
	return run, nil
}

// Recent returns the most recent runs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
