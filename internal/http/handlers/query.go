package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectsail/rainfall-backend/internal/http/response"
	"github.com/projectsail/rainfall-backend/internal/services"
)

// QueryHandler is the intake path: it stores user questions for the agent to
// answer later. History is preserved, one row per submission.
type QueryHandler struct {
	correlationService services.CorrelationService
}

func NewQueryHandler(correlationService services.CorrelationService) *QueryHandler {
	return &QueryHandler{correlationService: correlationService}
}

func (qh *QueryHandler) SubmitQuery(c *gin.Context) {
	var req struct {
		UserID  uuid.UUID `json:"user_id"`
		Message string    `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	query, err := qh.correlationService.SubmitQuery(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		response.RespondMappedError(c, "query_intake_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"query_id":   query.ID,
		"user_id":    query.UserID.String(),
		"created_at": query.CreatedAt,
	})
}
