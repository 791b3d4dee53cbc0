package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/projectsail/rainfall-backend/internal/data/repos/testutil"
	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewAuthService(tx, log, userrepo.NewUserRepo(tx, log), "test-secret", time.Hour)
	return svc, tx
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "rainfan", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "hunter2" {
		t.Fatal("expected password to be stored hashed")
	}

	loggedIn, token, err := svc.LoginUser(ctx, "rainfan", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, loggedIn.ID)
	}
	if token == "" {
		t.Fatal("expected a signed access token")
	}

	parsed, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != user.ID {
		t.Fatalf("expected token subject %s, got %s", user.ID, parsed)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "dupe", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.RegisterUser(ctx, "dupe", "other")
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for duplicate username, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "wrongpw", "correct"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.LoginUser(ctx, "wrongpw", "incorrect")
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}

	_, _, err = svc.LoginUser(ctx, "ghost", "anything")
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

func TestParseAccessTokenRejectsForgery(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "forged", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, err := svc.LoginUser(ctx, "forged", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := NewAuthService(nil, testutil.Logger(t), nil, "different-secret", time.Hour)
	if _, err := other.ParseAccessToken(token); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
	if _, err := svc.ParseAccessToken("not-a-token"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}
