package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	forecastrepo "github.com/projectsail/rainfall-backend/internal/data/repos/forecast"
	"github.com/projectsail/rainfall-backend/internal/data/repos/testutil"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
)

func newForecastService(t *testing.T) (ForecastService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	svc := NewForecastService(tx, log, forecastrepo.NewForecastRepo(tx, log))
	return svc, tx
}

func TestPublishAndLatestWins(t *testing.T) {
	svc, _ := newForecastService(t)
	ctx := context.Background()

	first, n, err := svc.Publish(ctx, types.SeriesTypeDaily, []types.ForecastPoint{
		{Date: "2021-10-10", Rainfall: 3},
		{Date: "2021-10-11", Rainfall: 4},
	})
	if err != nil {
		t.Fatalf("publish first: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 stored points, got %d", n)
	}

	second, _, err := svc.Publish(ctx, types.SeriesTypeDaily, []types.ForecastPoint{
		{Date: "2021-10-12", Rainfall: 5},
	})
	if err != nil {
		t.Fatalf("publish second: %v", err)
	}

	latest, err := svc.GetLatest(ctx, types.SeriesTypeDaily)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest record %d, got %d", second.ID, latest.ID)
	}

	points, err := svc.DecodePoints(latest)
	if err != nil {
		t.Fatalf("decode latest: %v", err)
	}
	if len(points) != 1 || points[0].Date != "2021-10-12" {
		t.Fatalf("expected second publish payload, got %+v", points)
	}
	_ = first
}

func TestPublishEmptyStoresDefaultSample(t *testing.T) {
	svc, _ := newForecastService(t)
	ctx := context.Background()

	record, n, err := svc.Publish(ctx, types.SeriesTypeMonthly, nil)
	if err != nil {
		t.Fatalf("publish empty: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 default monthly points, got %d", n)
	}

	points, err := svc.DecodePoints(record)
	if err != nil {
		t.Fatalf("decode default sample: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if _, err := time.Parse("2006-01-02", p.Date); err != nil {
			t.Fatalf("default sample date %q does not parse: %v", p.Date, err)
		}
	}
}

func TestPublishInvalidType(t *testing.T) {
	svc, _ := newForecastService(t)
	ctx := context.Background()

	_, _, err := svc.Publish(ctx, "weekly", []types.ForecastPoint{{Date: "2021-10-10", Rainfall: 1}})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown type, got %v", err)
	}

	_, err = svc.GetLatest(ctx, "weekly")
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument on read of unknown type, got %v", err)
	}
}

func TestGetLatestEmptySeries(t *testing.T) {
	svc, _ := newForecastService(t)
	ctx := context.Background()

	_, err := svc.GetLatest(ctx, types.SeriesTypeMonthly)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first publish, got %v", err)
	}
}

func TestDecodePointsCorrupted(t *testing.T) {
	svc, tx := newForecastService(t)
	ctx := context.Background()

	// Write-side trust means malformed payloads only surface at read.
	bad := testutil.SeedRawForecast(t, ctx, tx, types.SeriesTypeDaily, []byte(`{"not":"a list"}`), time.Now().UTC())
	if _, err := svc.DecodePoints(bad); !errors.Is(err, errs.ErrDataCorrupted) {
		t.Fatalf("expected ErrDataCorrupted for non-list payload, got %v", err)
	}

	empty := testutil.SeedRawForecast(t, ctx, tx, types.SeriesTypeDaily, []byte(`[]`), time.Now().UTC())
	if _, err := svc.DecodePoints(empty); !errors.Is(err, errs.ErrDataCorrupted) {
		t.Fatalf("expected ErrDataCorrupted for empty payload, got %v", err)
	}
}

func TestPublishConcurrentRetainsAllVersions(t *testing.T) {
	// Publishes commit to the shared DB (no wrapping test transaction) so the
	// goroutines genuinely race through the connection pool.
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewForecastService(db, log, forecastrepo.NewForecastRepo(db, log))
	ctx := context.Background()

	var (
		mu      sync.Mutex
		records []*types.ForecastRecord
		wg      sync.WaitGroup
	)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record, _, err := svc.Publish(ctx, types.SeriesTypeDaily, []types.ForecastPoint{
				{Date: "2021-10-10", Rainfall: float64(i)},
			})
			if err != nil {
				t.Errorf("concurrent publish %d: %v", i, err)
				return
			}
			mu.Lock()
			records = append(records, record)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	if len(records) != 3 {
		t.Fatalf("expected 3 published records, got %d", len(records))
	}

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	t.Cleanup(func() {
		db.Where("id IN ?", ids).Delete(&types.ForecastRecord{})
	})

	var count int64
	if err := db.Model(&types.ForecastRecord{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected all 3 publishes retained, got %d", count)
	}

	// Exactly one unambiguous winner: the max (created_at, id) record.
	winner := records[0]
	for _, r := range records[1:] {
		if r.CreatedAt.After(winner.CreatedAt) || (r.CreatedAt.Equal(winner.CreatedAt) && r.ID > winner.ID) {
			winner = r
		}
	}
	latest, err := svc.GetLatest(ctx, types.SeriesTypeDaily)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.ID != winner.ID {
		t.Fatalf("expected winner %d, got %d", winner.ID, latest.ID)
	}
}

func TestDefaultSampleSeriesShape(t *testing.T) {
	now := time.Date(2021, 10, 10, 12, 0, 0, 0, time.UTC)

	daily := DefaultSampleSeries(types.SeriesTypeDaily, now)
	if len(daily) != 7 {
		t.Fatalf("expected 7 daily points, got %d", len(daily))
	}
	if daily[0].Date != "2021-10-10" {
		t.Fatalf("expected daily series to start today, got %s", daily[0].Date)
	}

	monthly := DefaultSampleSeries(types.SeriesTypeMonthly, now)
	if len(monthly) != 3 {
		t.Fatalf("expected 3 monthly points, got %d", len(monthly))
	}
	if monthly[0].Date != "2021-10-01" {
		t.Fatalf("expected monthly series to start at month start, got %s", monthly[0].Date)
	}
	if monthly[2].Date != "2021-12-01" {
		t.Fatalf("expected consecutive months, got %s", monthly[2].Date)
	}
}
