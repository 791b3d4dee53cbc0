package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Correlation services.CorrelationService
	Forecast    services.ForecastService
	Chart       services.ChartService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")
	chartService, err := services.NewChartService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init chart service: %w", err)
	}
	return Services{
		Auth:        services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:        services.NewUserService(db, log, reposet.User),
		Correlation: services.NewCorrelationService(db, log, reposet.User, reposet.Query),
		Forecast:    services.NewForecastService(db, log, reposet.Forecast),
		Chart:       chartService,
	}, nil
}
