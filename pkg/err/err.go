package errprocess

import (
	"errors"
	"net/http"

	"video_share_service/pkg/logger"
)

// Kind classifies a failure so transport handlers can map it to a
// status code without inspecting message text.
type Kind int

const (
	// KindServer is an unexpected storage/database/provider failure.
	KindServer Kind = iota
	// KindUnauthorized is a missing or invalid session.
	KindUnauthorized
	// KindValidation is a schema or field violation.
	KindValidation
	// KindNotFound is a missing user/video/comment.
	KindNotFound
	// KindConflict is a duplicate-identifier rejection.
	KindConflict
)

// FieldError carries one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the service error type. Fields is non-empty only for
// validation failures.
type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
}

func (e *Error) Error() string {
	return e.Msg
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Validation builds a KindValidation error with per-field messages.
func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Server logs and builds a KindServer error.
func Server(msg string) *Error {
	logger.Log.Error(msg)
	return &Error{Kind: KindServer, Msg: msg}
}

// KindOf extracts the Kind from err; unknown errors are KindServer.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// FieldsOf extracts validation field messages, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
