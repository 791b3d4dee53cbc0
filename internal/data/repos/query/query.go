package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/projectsail/rainfall-backend/internal/domain"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type QueryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, queries []*types.Query) ([]*types.Query, error)
	// GetByIDForUser returns nil when the id does not exist or belongs to
	// another user. Ownership is part of the lookup so a correlation id can
	// never resolve across users.
	GetByIDForUser(ctx context.Context, tx *gorm.DB, queryID int64, userID uuid.UUID) (*types.Query, error)
	// GetLatestByUserID returns the query with the maximum (created_at, id)
	// for the user, or nil when the user has no queries.
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Query, error)
	// SetAnswer overwrites the answer fields of one query by primary key.
	SetAnswer(ctx context.Context, tx *gorm.DB, queryID int64, responseText string, respondedAt time.Time) error
}

type queryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQueryRepo(db *gorm.DB, baseLog *logger.Logger) QueryRepo {
	repoLog := baseLog.With("repo", "QueryRepo")
	return &queryRepo{db: db, log: repoLog}
}

func (qr *queryRepo) Create(ctx context.Context, tx *gorm.DB, queries []*types.Query) ([]*types.Query, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(queries) == 0 {
		return []*types.Query{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

func (qr *queryRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, queryID int64, userID uuid.UUID) (*types.Query, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Query
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", queryID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (qr *queryRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Query, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Query
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
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

func (qr *queryRepo) SetAnswer(ctx context.Context, tx *gorm.DB, queryID int64, responseText string, respondedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Query{}).
		Where("id = ?", queryID).
		Updates(map[string]any{
			"response_text": responseText,
			"response_time": respondedAt,
		}).Error
}
