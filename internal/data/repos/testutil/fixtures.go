package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  "pw",
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedQuery(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, text string, createdAt time.Time) *types.Query {
	tb.Helper()
	q := &types.Query{
		UserID:    userID,
		QueryText: text,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed query: %v", err)
	}
	return q
}

func SeedForecast(tb testing.TB, ctx context.Context, tx *gorm.DB, forecastType string, points []types.ForecastPoint, createdAt time.Time) *types.ForecastRecord {
	tb.Helper()
	payload, err := json.Marshal(points)
	if err != nil {
		tb.Fatalf("marshal forecast points: %v", err)
	}
	r := &types.ForecastRecord{
		ForecastType: forecastType,
		ForecastData: datatypes.JSON(payload),
		CreatedAt:    createdAt,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed forecast: %v", err)
	}
	return r
}

func SeedRawForecast(tb testing.TB, ctx context.Context, tx *gorm.DB, forecastType string, payload []byte, createdAt time.Time) *types.ForecastRecord {
	tb.Helper()
	r := &types.ForecastRecord{
		ForecastType: forecastType,
		ForecastData: datatypes.JSON(payload),
		CreatedAt:    createdAt,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed raw forecast: %v", err)
	}
	return r
}

func PtrInt64(v int64) *int64 { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
