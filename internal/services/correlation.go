package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	queryrepo "github.com/projectsail/rainfall-backend/internal/data/repos/query"
	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

// CorrelationService owns the Query lifecycle: intake of user questions and
// resolution of agent answers against them.
type CorrelationService interface {
	// SubmitQuery records a new outstanding query for the user.
	SubmitQuery(ctx context.Context, userID uuid.UUID, text string) (*types.Query, error)
	// SubmitAnswer resolves an agent answer to exactly one query. With a
	// correlation id the query must exist and belong to the user; without
	// one the user's most recent query is targeted, answered or not.
	// Repeated answers overwrite.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, responseText string, queryID *int64) (*types.Query, error)
	// GetLatest returns the user's most recent query with its current answer
	// fields, or (nil, nil) when the user has no queries yet.
	GetLatest(ctx context.Context, userID uuid.UUID) (*types.Query, error)
}

type correlationService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  userrepo.UserRepo
	queryRepo queryrepo.QueryRepo
}

func NewCorrelationService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, queryRepo queryrepo.QueryRepo) CorrelationService {
	serviceLog := baseLog.With("service", "CorrelationService")
	return &correlationService{db: db, log: serviceLog, userRepo: userRepo, queryRepo: queryRepo}
}

func (cs *correlationService) SubmitQuery(ctx context.Context, userID uuid.UUID, text string) (*types.Query, error) {
	if err := cs.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	q := &types.Query{
		UserID:    userID,
		QueryText: text,
		CreatedAt: time.Now().UTC(),
	}
	created, err := cs.queryRepo.Create(ctx, nil, []*types.Query{q})
	if err != nil {
		return nil, storeErr(cs.log, "create query", err)
	}

	cs.log.Info("Query stored", "user_id", userID.String(), "query_id", created[0].ID)
	return created[0], nil
}

func (cs *correlationService) SubmitAnswer(ctx context.Context, userID uuid.UUID, responseText string, queryID *int64) (*types.Query, error) {
	if err := cs.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	// Target resolution and the answer write share one transaction so a
	// query created mid-call can never split the read from the write.
	var target *types.Query
	txErr := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if queryID != nil {
			target, err = cs.queryRepo.GetByIDForUser(ctx, tx, *queryID, userID)
		} else {
			target, err = cs.queryRepo.GetLatestByUserID(ctx, tx, userID)
		}
		if err != nil {
			return storeErr(cs.log, "resolve query", err)
		}
		if target == nil {
			return fmt.Errorf("query: %w", errs.ErrNotFound)
		}

		respondedAt := time.Now().UTC()
		if err := cs.queryRepo.SetAnswer(ctx, tx, target.ID, responseText, respondedAt); err != nil {
			return storeErr(cs.log, "set answer", err)
		}
		target.ResponseText = &responseText
		target.ResponseTime = &respondedAt
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	cs.log.Info("Answer correlated", "user_id", userID.String(), "query_id", target.ID, "explicit", queryID != nil)
	return target, nil
}

func (cs *correlationService) GetLatest(ctx context.Context, userID uuid.UUID) (*types.Query, error) {
	if err := cs.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	latest, err := cs.queryRepo.GetLatestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, storeErr(cs.log, "get latest query", err)
	}
	// No query yet is a valid read result, not an error.
	return latest, nil
}

func (cs *correlationService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := cs.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return storeErr(cs.log, "check user", err)
	}
	if !exists {
		return fmt.Errorf("user: %w", errs.ErrNotFound)
	}
	return nil
}
