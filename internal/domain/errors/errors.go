package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrAlreadyRegistered  = errors.New("address already registered")
	ErrNotRegistered      = errors.New("address not registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrZeroAmount         = errors.New("contribution must be greater than zero")
	ErrInvalidRequestID   = errors.New("aid request not found")
	ErrAlreadyFulfilled   = errors.New("aid request already fulfilled")
	ErrTransferFailed     = errors.New("value transfer failed")
	ErrDepositExists      = errors.New("deposit already credited")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Stable error codes exposed at the API boundary so callers can branch on
// kind instead of matching message text.
const (
	CodeAlreadyRegistered = "ALREADY_REGISTERED"
	CodeNotRegistered     = "NOT_REGISTERED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeZeroAmount        = "ZERO_AMOUNT"
	CodeInvalidRequestID  = "INVALID_REQUEST_ID"
	CodeAlreadyFulfilled  = "ALREADY_FULFILLED"
	CodeTransferFailed    = "TRANSFER_FAILED"
	CodeDepositExists     = "DEPOSIT_EXISTS"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status and stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func AlreadyRegistered(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeAlreadyRegistered, message, ErrAlreadyRegistered)
}

func NotRegistered(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotRegistered, message, ErrNotRegistered)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeUnauthorized, message, ErrUnauthorized)
}

func InvalidAmount(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidAmount, message, ErrInvalidAmount)
}

func ZeroAmount(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeZeroAmount, message, ErrZeroAmount)
}

func InvalidRequestID(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeInvalidRequestID, message, ErrInvalidRequestID)
}

func AlreadyFulfilled(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeAlreadyFulfilled, message, ErrAlreadyFulfilled)
}

func TransferFailed(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeTransferFailed, message, ErrTransferFailed)
}

func DepositExists(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeDepositExists, message, ErrDepositExists)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
