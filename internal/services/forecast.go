package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	forecastrepo "github.com/projectsail/rainfall-backend/internal/data/repos/forecast"
	types "github.com/projectsail/rainfall-backend/internal/domain"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

const (
	defaultDailyPoints   = 7
	defaultMonthlyPoints = 3
)

// ForecastService is the append-only, latest-wins series store. Payloads are
// stored verbatim at publish time; their shape is validated once, at read.
type ForecastService interface {
	// Publish appends one immutable record. Empty input is replaced by the
	// built-in sample series for the type, so a well-typed publish never
	// fails for emptiness. Returns the record and the stored point count.
	Publish(ctx context.Context, forecastType string, points []types.ForecastPoint) (*types.ForecastRecord, int, error)
	// GetLatest returns the newest record of the type.
	GetLatest(ctx context.Context, forecastType string) (*types.ForecastRecord, error)
	// DecodePoints shape-checks a stored payload and returns its points.
	DecodePoints(record *types.ForecastRecord) ([]types.ForecastPoint, error)
}

type forecastService struct {
	db           *gorm.DB
	log          *logger.Logger
	forecastRepo forecastrepo.ForecastRepo
}

func NewForecastService(db *gorm.DB, baseLog *logger.Logger, forecastRepo forecastrepo.ForecastRepo) ForecastService {
	serviceLog := baseLog.With("service", "ForecastService")
	return &forecastService{db: db, log: serviceLog, forecastRepo: forecastRepo}
}

func (fs *forecastService) Publish(ctx context.Context, forecastType string, points []types.ForecastPoint) (*types.ForecastRecord, int, error) {
	if !types.ValidSeriesType(forecastType) {
		return nil, 0, fmt.Errorf("forecast type %q: %w", forecastType, errs.ErrInvalidArgument)
	}

	if len(points) == 0 {
		points = DefaultSampleSeries(forecastType, time.Now().UTC())
		fs.log.Warn("Empty series published, storing default sample", "forecast_type", forecastType, "points", len(points))
	}

	payload, err := json.Marshal(points)
	if err != nil {
		return nil, 0, fmt.Errorf("encode series: %w", errs.ErrInvalidArgument)
	}

	record := &types.ForecastRecord{
		ForecastType: forecastType,
		ForecastData: datatypes.JSON(payload),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := fs.forecastRepo.Create(ctx, nil, []*types.ForecastRecord{record})
	if err != nil {
		return nil, 0, storeErr(fs.log, "append forecast", err)
	}

	fs.log.Info("Forecast published", "forecast_type", forecastType, "forecast_id", created[0].ID, "points", len(points))
	return created[0], len(points), nil
}

func (fs *forecastService) GetLatest(ctx context.Context, forecastType string) (*types.ForecastRecord, error) {
	if !types.ValidSeriesType(forecastType) {
		return nil, fmt.Errorf("forecast type %q: %w", forecastType, errs.ErrInvalidArgument)
	}

	latest, err := fs.forecastRepo.GetLatestByType(ctx, nil, forecastType)
	if err != nil {
		return nil, storeErr(fs.log, "get latest forecast", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("series %q: %w", forecastType, errs.ErrNotFound)
	}
	return latest, nil
}

func (fs *forecastService) DecodePoints(record *types.ForecastRecord) ([]types.ForecastPoint, error) {
	var points []types.ForecastPoint
	if err := json.Unmarshal(record.ForecastData, &points); err != nil {
		fs.log.Error("Stored forecast payload is not a point list", "forecast_id", record.ID, "error", err)
		return nil, fmt.Errorf("forecast %d payload: %w", record.ID, errs.ErrDataCorrupted)
	}
	if len(points) == 0 {
		fs.log.Error("Stored forecast payload is empty", "forecast_id", record.ID)
		return nil, fmt.Errorf("forecast %d payload: %w", record.ID, errs.ErrDataCorrupted)
	}
	return points, nil
}

// DefaultSampleSeries builds the demo series stored when the agent publishes
// an empty list: 7 daily points from today, or 3 monthly points from the
// current month.
func DefaultSampleSeries(forecastType string, now time.Time) []types.ForecastPoint {
	switch forecastType {
	case types.SeriesTypeMonthly:
		points := make([]types.ForecastPoint, 0, defaultMonthlyPoints)
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < defaultMonthlyPoints; i++ {
			points = append(points, types.ForecastPoint{
				Date:     monthStart.AddDate(0, i, 0).Format("2006-01-02"),
				Rainfall: float64(40 + 10*i),
			})
		}
		return points
	default:
		points := make([]types.ForecastPoint, 0, defaultDailyPoints)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		for i := 0; i < defaultDailyPoints; i++ {
			points = append(points, types.ForecastPoint{
				Date:     dayStart.AddDate(0, 0, i).Format("2006-01-02"),
				Rainfall: float64(2 + i%4),
			})
		}
		return points
	}
}
