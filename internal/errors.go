package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingTitle     ErrorCode = "MISSING_TITLE"
	ErrCodeMissingGroupType ErrorCode = "MISSING_GROUP_TYPE"
	ErrCodeMissingImage     ErrorCode = "MISSING_IMAGE"
	ErrCodeMissingContent   ErrorCode = "MISSING_CONTENT"
	ErrCodeInvalidPlan      ErrorCode = "INVALID_PLAN"

	ErrCodeGroupNotFound        ErrorCode = "GROUP_NOT_FOUND"
	ErrCodePostNotFound         ErrorCode = "POST_NOT_FOUND"
	ErrCodeCommentNotFound      ErrorCode = "COMMENT_NOT_FOUND"
	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeMembershipNotFound   ErrorCode = "MEMBERSHIP_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"

	ErrCodeAlreadyJoined    ErrorCode = "ALREADY_JOINED"
	ErrCodeEmailTaken       ErrorCode = "EMAIL_TAKEN"
	ErrCodeNotGroupMember   ErrorCode = "NOT_GROUP_MEMBER"
	ErrCodeNotGroupOwner    ErrorCode = "NOT_GROUP_OWNER"
	ErrCodeNotAdmin         ErrorCode = "NOT_ADMIN"
	ErrCodePlanNotAllowed   ErrorCode = "PLAN_NOT_ALLOWED"
	ErrCodeNotResourceOwner ErrorCode = "NOT_RESOURCE_OWNER"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Notice is the human-readable string the presentation layer shows the
// user when an operation fails. It is always the plain message, never the
// wrapped cause.
func (e *AppError) Notice() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewValidationFieldErrors(errs []ValidationError) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusUnprocessableEntity,
		Details:    ValidationErrors{Errors: errs},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Sentinel errors shared across services. Handlers translate these to
// redirects or re-renders with the notice text, never to a crash.
var (
	ErrGroupNotFound        = NewNotFoundError("Group not found", ErrCodeGroupNotFound)
	ErrPostNotFound         = NewNotFoundError("Post not found", ErrCodePostNotFound)
	ErrCommentNotFound      = NewNotFoundError("Comment not found", ErrCodeCommentNotFound)
	ErrUserNotFound         = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrMembershipNotFound   = NewNotFoundError("Membership not found", ErrCodeMembershipNotFound)
	ErrNotificationNotFound = NewNotFoundError("Notification not found", ErrCodeNotificationNotFound)

	ErrAlreadyJoined = NewConflictError("You have already joined this group", ErrCodeAlreadyJoined)
	ErrEmailTaken    = NewConflictError("Email is already registered", ErrCodeEmailTaken)

	ErrNotGroupMember   = NewForbiddenError("You are not member of this group", ErrCodeNotGroupMember)
	ErrNotGroupOwner    = NewForbiddenError("Only the group owner can manage requests", ErrCodeNotGroupOwner)
	ErrNotAdmin         = NewForbiddenError("You are not admin", ErrCodeNotAdmin)
	ErrPlanNotAllowed   = NewForbiddenError("User is not admin nor premium", ErrCodePlanNotAllowed)
	ErrNotResourceOwner = NewForbiddenError("You may only manage your own content", ErrCodeNotResourceOwner)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
