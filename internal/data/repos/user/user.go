package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/projectsail/rainfall-backend/internal/domain"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(usernames) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("username IN ?", usernames).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
