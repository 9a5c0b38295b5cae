package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/crop-recommender/config"

	"github.com/google/uuid"
)

// Record is one persisted prediction outcome
type Record struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Nitrogen    float64   `json:"nitrogen"`
	Phosphorus  float64   `json:"phosphorus"`
	Potassium   float64   `json:"potassium"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Ph          float64   `json:"ph"`
	Rainfall    float64   `json:"rainfall"`
	Status      string    `json:"status" gorm:"size:20;not null;index"`
	ClassID     int       `json:"class_id"`
	Crop        string    `json:"crop" gorm:"size:100"`
	Message     string    `json:"message" gorm:"type:text"`
	Error       string    `json:"error,omitempty" gorm:"type:text"`
	ClientIP    string    `json:"client_ip" gorm:"size:64"`
	RequestID   string    `json:"request_id" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "prediction_history"
}

// Recorder persists prediction outcomes
type Recorder interface {
	Record(ctx context.Context, record *Record) error
}

// Repository defines the interface for history data access
type Repository interface {
	Recorder
	List(ctx context.Context, offset, limit int) ([]*Record, error)
	Count(ctx context.Context) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service defines the interface for history queries and retention
type Service interface {
	List(ctx context.Context, page, limit int) ([]*Record, int64, error)
	Prune(ctx context.Context) (int64, error)
}

// NopRecorder discards records; it is used when history is disabled
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, *Record) error {
	return nil
}

// ListResponse represents a paginated history page
type ListResponse struct {
	Records []*Record `json:"records"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
	Pages   int       `json:"pages"`
}

// Enabled parses HISTORY_ENABLED; history is off unless explicitly enabled
func Enabled(cfg *config.HistoryConfig) (bool, error) {
	if cfg == nil || cfg.Enabled == "" {
		return false, nil
	}

	enabled, err := strconv.ParseBool(cfg.Enabled)
	if err != nil {
		return false, fmt.Errorf("invalid history enabled flag '%s': %v", cfg.Enabled, err)
	}
	return enabled, nil
}
