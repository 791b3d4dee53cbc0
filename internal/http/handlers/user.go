package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectsail/rainfall-backend/internal/http/middleware"
	"github.com/projectsail/rainfall-backend/internal/http/response"
	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := c.Value(middleware.ContextUserIDKey).(uuid.UUID)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "missing_identity", fmt.Errorf("no authenticated user: %w", errs.ErrUnauthorized))
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.RespondMappedError(c, "user_lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"id":         user.ID.String(),
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
}
