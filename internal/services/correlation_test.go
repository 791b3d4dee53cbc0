package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	queryrepo "github.com/projectsail/rainfall-backend/internal/data/repos/query"
	"github.com/projectsail/rainfall-backend/internal/data/repos/testutil"
	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
)

func newCorrelationService(t *testing.T) (CorrelationService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewCorrelationService(tx, log, userrepo.NewUserRepo(tx, log), queryrepo.NewQueryRepo(tx, log))
	return svc, tx
}

func TestSubmitQueryStoresHistory(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-query")

	first, err := svc.SubmitQuery(ctx, user.ID, "will it rain tomorrow")
	if err != nil {
		t.Fatalf("submit first query: %v", err)
	}
	second, err := svc.SubmitQuery(ctx, user.ID, "what about next week")
	if err != nil {
		t.Fatalf("submit second query: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected each submission to create a new query")
	}
	if second.Answered() {
		t.Fatal("expected new query to be unanswered")
	}
}

func TestSubmitQueryUnknownUser(t *testing.T) {
	svc, _ := newCorrelationService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuery(ctx, uuid.New(), "orphan")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestSubmitAnswerExplicitCorrelation(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "explicit-corr")
	now := time.Now().UTC()
	older := testutil.SeedQuery(t, ctx, tx, user.ID, "older", now.Add(-time.Hour))
	testutil.SeedQuery(t, ctx, tx, user.ID, "newer", now)

	// An explicit id targets that query even when a newer one exists.
	answered, err := svc.SubmitAnswer(ctx, user.ID, "answer for older", &older.ID)
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if answered.ID != older.ID {
		t.Fatalf("expected answer on query %d, got %d", older.ID, answered.ID)
	}
	if answered.ResponseText == nil || *answered.ResponseText != "answer for older" {
		t.Fatalf("expected stored response text, got %+v", answered.ResponseText)
	}
}

func TestSubmitAnswerImplicitTargetsMostRecent(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "implicit-corr")
	now := time.Now().UTC()
	testutil.SeedQuery(t, ctx, tx, user.ID, "older", now.Add(-time.Hour))
	newest := testutil.SeedQuery(t, ctx, tx, user.ID, "newest", now)

	answered, err := svc.SubmitAnswer(ctx, user.ID, "implicit answer", nil)
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if answered.ID != newest.ID {
		t.Fatalf("expected most recent query %d, got %d", newest.ID, answered.ID)
	}

	// The most recent query stays the target even once answered: a second
	// implicit answer overwrites rather than falling back to an older query.
	again, err := svc.SubmitAnswer(ctx, user.ID, "second answer", nil)
	if err != nil {
		t.Fatalf("second submit answer: %v", err)
	}
	if again.ID != newest.ID {
		t.Fatalf("expected overwrite on query %d, got %d", newest.ID, again.ID)
	}
	if again.ResponseText == nil || *again.ResponseText != "second answer" {
		t.Fatalf("expected overwritten text, got %+v", again.ResponseText)
	}
}

func TestSubmitAnswerCrossUserID(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "cross-owner")
	other := testutil.SeedUser(t, ctx, tx, "cross-other")
	q := testutil.SeedQuery(t, ctx, tx, owner.ID, "owned", time.Now().UTC())

	_, err := svc.SubmitAnswer(ctx, other.ID, "stolen answer", &q.ID)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-user id, got %v", err)
	}
}

func TestSubmitAnswerNoQueries(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "no-queries")

	_, err := svc.SubmitAnswer(ctx, user.ID, "answer to nothing", nil)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when user has no queries, got %v", err)
	}
}

func TestGetLatestAsymmetry(t *testing.T) {
	svc, tx := newCorrelationService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "latest-read")

	// A read with no queries is a valid empty result, unlike SubmitAnswer.
	latest, err := svc.GetLatest(ctx, user.ID)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil latest for user with no queries, got %+v", latest)
	}

	q := testutil.SeedQuery(t, ctx, tx, user.ID, "pending", time.Now().UTC())
	latest, err = svc.GetLatest(ctx, user.ID)
	if err != nil {
		t.Fatalf("get latest after seed: %v", err)
	}
	if latest == nil || latest.ID != q.ID {
		t.Fatalf("expected query %d, got %+v", q.ID, latest)
	}
	if latest.Answered() {
		t.Fatal("expected unanswered query")
	}
}
