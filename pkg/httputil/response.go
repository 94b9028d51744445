package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidamais/portal-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a success response for a newly created resource
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithStatus sends an error response with an explicit HTTP status,
// for failures that happen before an application error exists (bad bearer
// tokens, rate limiting).
func RespondWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
		},
	})
}

// RespondWithError sends an error response with a status derived from the
// application error code
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		status = StatusCode(appErr.Code)
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    status,
			Message: message,
		},
	})
}

// StatusCode maps application error codes to HTTP status codes.
func StatusCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrDomain:
		return http.StatusConflict
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
