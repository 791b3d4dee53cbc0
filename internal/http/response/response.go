package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondMappedError maps the service error taxonomy to HTTP status codes.
func RespondMappedError(c *gin.Context, code string, err error) {
	RespondError(c, statusFor(err), code, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		// ErrDataCorrupted and anything unexpected are server-side faults.
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
