package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectsail/rainfall-backend/internal/http/response"
	"github.com/projectsail/rainfall-backend/internal/services"
)

// AgentHandler is the unauthenticated surface the agent process posts
// answers through, plus the frontend's read of the latest answer.
type AgentHandler struct {
	correlationService services.CorrelationService
}

func NewAgentHandler(correlationService services.CorrelationService) *AgentHandler {
	return &AgentHandler{correlationService: correlationService}
}

// SubmitResponse correlates an agent answer to a query: the one named by
// query_id, or the user's most recent query when query_id is omitted.
func (ah *AgentHandler) SubmitResponse(c *gin.Context) {
	var req struct {
		UserID       uuid.UUID `json:"user_id"`
		ResponseText string    `json:"response_text"`
		QueryID      *int64    `json:"query_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	query, err := ah.correlationService.SubmitAnswer(c.Request.Context(), req.UserID, req.ResponseText, req.QueryID)
	if err != nil {
		response.RespondMappedError(c, "answer_correlation_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"status":   "success",
		"query_id": query.ID,
		"user_id":  query.UserID.String(),
	})
}

// GetLatestResponse returns the user's most recent query with its answer
// fields. A user with no queries yet gets null fields, not an error.
func (ah *AgentHandler) GetLatestResponse(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	latest, err := ah.correlationService.GetLatest(c.Request.Context(), userID)
	if err != nil {
		response.RespondMappedError(c, "latest_response_failed", err)
		return
	}
	if latest == nil {
		response.RespondOK(c, gin.H{
			"query_id":      nil,
			"query_text":    nil,
			"response_text": nil,
			"response_time": nil,
		})
		return
	}
	response.RespondOK(c, gin.H{
		"query_id":      latest.ID,
		"query_text":    latest.QueryText,
		"response_text": latest.ResponseText,
		"response_time": latest.ResponseTime,
		"created_at":    latest.CreatedAt,
	})
}
