package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/projectsail/rainfall-backend/internal/http/handlers"
	httpMW "github.com/projectsail/rainfall-backend/internal/http/middleware"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName string
	Logger      *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	QueryHandler    *httpH.QueryHandler
	AgentHandler    *httpH.AgentHandler
	ForecastHandler *httpH.ForecastHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Tracing first so AttachRequestContext can echo the trace id.
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())
	if cfg.Logger != nil {
		r.Use(httpMW.RequestLogger(cfg.Logger))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/status", cfg.HealthHandler.Status)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/auth/signup", cfg.AuthHandler.Signup)
		r.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Query intake + agent answer correlation
	if cfg.QueryHandler != nil {
		r.POST("/user_input", cfg.QueryHandler.SubmitQuery)
	}
	if cfg.AgentHandler != nil {
		r.POST("/chatbot_response", cfg.AgentHandler.SubmitResponse)
		r.GET("/chatbot_response", cfg.AgentHandler.GetLatestResponse)
	}

	// Forecast series: POST appends a new version, GET renders the latest
	if cfg.ForecastHandler != nil {
		r.POST("/daily_forecast", cfg.ForecastHandler.PublishDaily)
		r.GET("/daily_forecast", cfg.ForecastHandler.GetDailyChart)
		r.POST("/monthly_forecast", cfg.ForecastHandler.PublishMonthly)
		r.GET("/monthly_forecast", cfg.ForecastHandler.GetMonthlyChart)
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.UserHandler != nil {
			api.GET("/me", cfg.UserHandler.GetMe)
		}
	}

	return r
}
