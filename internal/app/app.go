package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/projectsail/rainfall-backend/internal/data/db"
	httpserver "github.com/projectsail/rainfall-backend/internal/http"
	"github.com/projectsail/rainfall-backend/internal/observability"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpserver.Server
	Cfg      Config
	Repos    Repos
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset)
	server := wireServer(log, cfg, handlerset, serviceset)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		a.otelShutdown(context.Background())
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
