package db

import (
	types "github.com/projectsail/rainfall-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Query{},
		&types.ForecastRecord{},
	)
}
