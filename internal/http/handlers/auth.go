package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectsail/rainfall-backend/internal/http/response"
	"github.com/projectsail/rainfall-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondMappedError(c, "registration_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{
		"id":         user.ID.String(),
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, accessToken, err := ah.authService.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondMappedError(c, "invalid_credentials", err)
		return
	}
	response.RespondOK(c, gin.H{
		"id":           user.ID.String(),
		"username":     user.Username,
		"access_token": accessToken,
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
	})
}
