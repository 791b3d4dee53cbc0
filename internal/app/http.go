package app

import (
	httpserver "github.com/projectsail/rainfall-backend/internal/http"
	httpH "github.com/projectsail/rainfall-backend/internal/http/handlers"
	httpMW "github.com/projectsail/rainfall-backend/internal/http/middleware"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Query    *httpH.QueryHandler
	Agent    *httpH.AgentHandler
	Forecast *httpH.ForecastHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		User:     httpH.NewUserHandler(serviceset.User),
		Query:    httpH.NewQueryHandler(serviceset.Correlation),
		Agent:    httpH.NewAgentHandler(serviceset.Correlation),
		Forecast: httpH.NewForecastHandler(log, serviceset.User, serviceset.Forecast, serviceset.Chart),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlerset Handlers, serviceset Services) *httpserver.Server {
	log.Info("Wiring HTTP server...")
	return httpserver.NewServer(httpserver.RouterConfig{
		ServiceName:     cfg.ServiceName,
		Logger:          log,
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, serviceset.Auth),
		HealthHandler:   handlerset.Health,
		AuthHandler:     handlerset.Auth,
		UserHandler:     handlerset.User,
		QueryHandler:    handlerset.Query,
		AgentHandler:    handlerset.Agent,
		ForecastHandler: handlerset.Forecast,
	})
}
