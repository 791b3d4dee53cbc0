package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type AuthService interface {
	RegisterUser(ctx context.Context, username, password string) (*types.User, error)
	// LoginUser returns the user and a signed access token.
	LoginUser(ctx context.Context, username, password string) (*types.User, string, error)
	ParseAccessToken(tokenString string) (uuid.UUID, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, username, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", errs.ErrInvalidArgument)
	}

	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, storeErr(as.log, "check username", err)
	}
	if exists {
		return nil, fmt.Errorf("username already exists: %w", errs.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	}
	created, err := as.userRepo.Create(ctx, nil, []*types.User{user})
	if err != nil {
		return nil, storeErr(as.log, "create user", err)
	}

	as.log.Info("User registered", "user_id", created[0].ID.String(), "username", username)
	return created[0], nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (*types.User, string, error) {
	username = strings.TrimSpace(username)

	users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return nil, "", storeErr(as.log, "get user", err)
	}
	if len(users) == 0 {
		return nil, "", fmt.Errorf("invalid username or password: %w", errs.ErrUnauthorized)
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid username or password: %w", errs.ErrUnauthorized)
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign access token: %w", err)
	}

	as.log.Info("User logged in", "user_id", user.ID.String())
	return user, token, nil
}

func (as *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid access token: %w", errs.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims: %w", errs.ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject: %w", errs.ErrUnauthorized)
	}
	return userID, nil
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
