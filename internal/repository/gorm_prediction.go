package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/crop-recommender/internal/history"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPredictionRepository implements the history.Repository interface with GORM
type gormPredictionRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMPredictionRepository creates a new GORM-based prediction history repository
func NewGORMPredictionRepository(db *gorm.DB, log *logger.Logger) history.Repository {
	return &gormPredictionRepository{
		db:     db,
		logger: log.WithComponent("gorm-prediction-repository"),
	}
}

// Migrate creates or updates the prediction history table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&history.Record{}); err != nil {
		return fmt.Errorf("failed to migrate prediction history: %w", err)
	}
	return nil
}

func (r *gormPredictionRepository) Record(ctx context.Context, record *history.Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.logger.Error("Failed to store prediction record: " + err.Error())
		return fmt.Errorf("failed to create prediction record: %w", err)
	}

	return nil
}

func (r *gormPredictionRepository) List(ctx context.Context, offset, limit int) ([]*history.Record, error) {
	var records []*history.Record

	// Newest first; id breaks ties between records created in the same instant
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		r.logger.Error("Failed to list prediction records: " + err.Error())
		return nil, fmt.Errorf("failed to list prediction records: %w", err)
	}

	return records, nil
}

func (r *gormPredictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&history.Record{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count prediction records: %w", err)
	}
	return count, nil
}

func (r *gormPredictionRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&history.Record{})
	if err := result.Error; err != nil {
		r.logger.Error("Failed to delete prediction records: " + err.Error())
		return 0, fmt.Errorf("failed to delete prediction records: %w", err)
	}

	return result.RowsAffected, nil
}
