package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrStateMismatch      = errors.New("state mismatch")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotExists      = errors.New("user not exists")
	ErrTokenNotExists     = errors.New("no spotify access, try to link your account again")
	ErrSpotifyNotLinked   = errors.New("spotify account not linked")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AppError carries an HTTP status alongside the message so handlers can
// return domain failures without touching the response writer.
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, format string, args ...any) *AppError {
	return &AppError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *AppError {
	return NewAppError(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *AppError {
	return NewAppError(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return NewAppError(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *AppError {
	return NewAppError(http.StatusNotFound, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return NewAppError(http.StatusConflict, format, args...)
}

func Locked(format string, args ...any) *AppError {
	return NewAppError(http.StatusTooManyRequests, format, args...)
}

func Internal(format string, args ...any) *AppError {
	return NewAppError(http.StatusInternalServerError, format, args...)
}
