package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the shared record store. Postgres when DATABASE_URL is set,
// otherwise a local sqlite file so the backend runs without any infra.
func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	databaseURL := utils.GetEnv("DATABASE_URL", "", logg)

	var dialector gorm.Dialector
	if databaseURL != "" {
		serviceLog.Info("Using Postgres record store")
		dialector = postgres.Open(databaseURL)
	} else {
		dataDir := utils.GetEnv("DATA_DIR", "data", logg)
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		path := filepath.Join(dataDir, "sail.db")
		serviceLog.Info("DATABASE_URL not set, falling back to local sqlite", "path", path)
		dialector = sqlite.Open(path)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to record store: %w", err)
	}

	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
