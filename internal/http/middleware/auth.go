package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectsail/rainfall-backend/internal/http/response"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/services"
)

const ContextUserIDKey = "auth_user_id"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(baseLog *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: baseLog.With("middleware", "AuthMiddleware"), authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tokenString == header {
			response.RespondError(c, http.StatusUnauthorized, "missing_token", fmt.Errorf("missing bearer token: %w", errs.ErrUnauthorized))
			c.Abort()
			return
		}

		userID, err := am.authService.ParseAccessToken(tokenString)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, "invalid_token", err)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
