package testutil

import (
	"os"
	"sync"
	"testing"

	types "github.com/projectsail/rainfall-backend/internal/domain"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a shared test database. TEST_POSTGRES_DSN selects postgres;
// without it the suite runs against in-memory sqlite, which the models are
// kept compatible with (no database-side defaults).
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}

		var err error
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
			if err == nil {
				// In-memory sqlite rejects concurrent writers; one pooled
				// connection serializes them.
				if sqlDB, derr := db.DB(); derr == nil {
					sqlDB.SetMaxOpenConns(1)
				}
			}
		}
		if err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Query{},
		&types.ForecastRecord{},
	)
}
