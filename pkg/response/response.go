// Package response renders the API's JSON envelopes. Success bodies carry
// the payload under "data"; error bodies carry a stable error_code that
// clients can switch on without parsing messages.
package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope wraps every successful payload.
type Envelope struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 with data.
func OK(c *gin.Context, data any) {
	send(c, http.StatusOK, data)
}

// Created sends a 201 with data.
func Created(c *gin.Context, data any) {
	send(c, http.StatusCreated, data)
}

func send(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error renders err as an ErrorBody. *apperror.AppError values keep their
// code and status; anything else is masked as an opaque 500 so internals
// never leak to clients.
func Error(c *gin.Context, err error) {
	code, message, status := "SYS_000", "Internal server error", http.StatusInternalServerError

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code, message, status = appErr.Code, appErr.Message, appErr.HTTPStatus
	}

	c.JSON(status, ErrorBody{
		ErrorCode: code,
		Message:   message,
		RequestID: requestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// requestID prefers the caller-supplied X-Request-ID header, then any id a
// middleware stored on the context, then mints one so responses are always
// correlatable.
func requestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.NewString()
}
