package app

import (
	"time"

	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/utils"
)

type Config struct {
	Port           string
	ServiceName    string
	Environment    string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8000", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "rainfall-backend", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	return Config{
		Port:           port,
		ServiceName:    serviceName,
		Environment:    environment,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
	}
}
