package forecast

import (
	"context"

	"gorm.io/gorm"

	types "github.com/projectsail/rainfall-backend/internal/domain"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

// ForecastRepo is append-only: rows are never updated or deleted.
type ForecastRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.ForecastRecord) ([]*types.ForecastRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []int64) ([]*types.ForecastRecord, error)
	// GetLatestByType returns the newest record of the type by
	// (created_at, id), or nil when none has been published yet.
	GetLatestByType(ctx context.Context, tx *gorm.DB, forecastType string) (*types.ForecastRecord, error)
}

type forecastRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastRepo(db *gorm.DB, baseLog *logger.Logger) ForecastRepo {
	repoLog := baseLog.With("repo", "ForecastRepo")
	return &forecastRepo{db: db, log: repoLog}
}

func (fr *forecastRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.ForecastRecord) ([]*types.ForecastRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(records) == 0 {
		return []*types.ForecastRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (fr *forecastRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []int64) ([]*types.ForecastRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.ForecastRecord
	if len(recordIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", recordIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *forecastRepo) GetLatestByType(ctx context.Context, tx *gorm.DB, forecastType string) (*types.ForecastRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.ForecastRecord
	if err := transaction.WithContext(ctx).
		Where("forecast_type = ?", forecastType).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
