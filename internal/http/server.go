package http

import (
	"github.com/gin-gonic/gin"

	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

// Server owns the configured engine. Tests hit Engine directly; the app
// serves through Run.
type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: cfg.Logger}
}

func (s *Server) Run(address string) error {
	if s.log != nil {
		s.log.Info("HTTP server starting", "addr", address)
	}
	return s.Engine.Run(address)
}
