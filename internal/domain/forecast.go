package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SeriesTypeDaily   = "daily"
	SeriesTypeMonthly = "monthly"
)

func ValidSeriesType(seriesType string) bool {
	switch seriesType {
	case SeriesTypeDaily, SeriesTypeMonthly:
		return true
	default:
		return false
	}
}

// ForecastPoint is one (date, rainfall) pair as published by the agent.
// The date string is stored verbatim; it is parsed only at presentation time.
type ForecastPoint struct {
	Date     string  `json:"date"`
	Rainfall float64 `json:"rainfall"`
}

// ForecastRecord is one append of a named series. Rows are immutable;
// "latest" per type is max (created_at, id), never a cached pointer.
type ForecastRecord struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ForecastType string         `gorm:"size:16;not null;index;column:forecast_type" json:"forecast_type"`
	ForecastData datatypes.JSON `gorm:"not null;column:forecast_data" json:"forecast_data"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ForecastRecord) TableName() string { return "forecasts" }
