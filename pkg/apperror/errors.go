package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrWalletRequired() *AppError {
	return New("AUTH_002", "Wallet address is required", http.StatusBadRequest)
}

func ErrUserInactive() *AppError {
	return New("AUTH_003", "User account is deactivated", http.StatusForbidden)
}

// ---- Users (USER) ----

func ErrWalletExists() *AppError {
	return New("USER_001", "User with this wallet address already exists", http.StatusConflict)
}

// ---- Assets (ASSET) ----

func ErrAssetInactive() *AppError {
	return New("ASSET_001", "Asset is not active", http.StatusBadRequest)
}

func ErrNotAssetOwner() *AppError {
	return New("ASSET_002", "Not authorized to modify this asset", http.StatusForbidden)
}

func ErrUnknownAssetType() *AppError {
	return New("ASSET_003", "Asset type not found", http.StatusNotFound)
}

// ---- Trade orders (ORDER) ----

func ErrOrderNotPending() *AppError {
	return New("ORDER_001", "Order is not pending", http.StatusBadRequest)
}

func ErrNotOrderOwner() *AppError {
	return New("ORDER_002", "Not authorized to modify this order", http.StatusForbidden)
}

func ErrOwnOrderExecution() *AppError {
	return New("ORDER_003", "Cannot execute your own order", http.StatusBadRequest)
}

// ---- Shared ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
