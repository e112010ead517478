// Package apierr renders API error bodies.
package apierr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/api/http/middleware"
)

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternal       = "INTERNAL_ERROR"

	internalMessage = "An unexpected error occurred"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write sends an error body with the given status.
func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: code, Message: message})
}

// InvalidRequest sends a 400 INVALID_REQUEST.
func InvalidRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// Internal logs err with the request id and sends a generic 500. The cause
// never reaches the client.
func Internal(c *gin.Context, log *zap.Logger, err error) {
	log.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Write(c, http.StatusInternalServerError, CodeInternal, internalMessage)
}
