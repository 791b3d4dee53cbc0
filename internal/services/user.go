package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, storeErr(us.log, "get user", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user: %w", errs.ErrNotFound)
	}
	return users[0], nil
}

func (us *userService) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := us.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return false, storeErr(us.log, "check user", err)
	}
	return exists, nil
}
