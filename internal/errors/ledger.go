package errors

import "net/http"

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "invalid input",
		Status:  http.StatusBadRequest,
	}
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
		Status:  http.StatusNotFound,
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "caller is not a participant",
		Status:  http.StatusForbidden,
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient wallet balance",
		Status:  http.StatusBadRequest,
	}
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "daily transaction limit exceeded",
		Status:  http.StatusTooManyRequests,
	}
	ErrConflict = &DomainError{
		Code:    "CONFLICT",
		Message: "duplicate value for a unique field",
		Status:  http.StatusConflict,
	}
	ErrWalletLocked = &DomainError{
		Code:    "WALLET_LOCKED",
		Message: "wallet is locked",
		Status:  http.StatusForbidden,
	}
	ErrInternal = &DomainError{
		Code:    "INTERNAL",
		Message: "internal error",
		Status:  http.StatusInternalServerError,
	}
)
