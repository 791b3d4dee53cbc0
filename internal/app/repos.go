package app

import (
	"gorm.io/gorm"

	forecastrepo "github.com/projectsail/rainfall-backend/internal/data/repos/forecast"
	queryrepo "github.com/projectsail/rainfall-backend/internal/data/repos/query"
	userrepo "github.com/projectsail/rainfall-backend/internal/data/repos/user"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type Repos struct {
	User     userrepo.UserRepo
	Query    queryrepo.QueryRepo
	Forecast forecastrepo.ForecastRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     userrepo.NewUserRepo(db, log),
		Query:    queryrepo.NewQueryRepo(db, log),
		Forecast: forecastrepo.NewForecastRepo(db, log),
	}
}
