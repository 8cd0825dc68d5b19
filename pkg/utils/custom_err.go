package utils

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrSubscriptionNotActive = errors.New("subscription is not active")
	ErrSessionNotFound       = errors.New("wallet session not found")
	ErrSessionExpired        = errors.New("wallet session expired")
	ErrInvalidAddress        = errors.New("invalid wallet address")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidCycle          = errors.New("invalid billing cycle")
	ErrInsufficientBalance   = errors.New("amount exceeds wallet balance")
	ErrDuplicatePayment      = errors.New("payment signature already recorded")
	ErrDatabaseError         = errors.New("database error")
)

// ErrorKind classifies failures coming back from external services so the
// API layer can pick a status code without string-matching provider messages.
type ErrorKind string

const (
	KindCancelled   ErrorKind = "cancelled"   // user dismissed the wallet prompt
	KindSecurity    ErrorKind = "security"    // origin/credential rejected
	KindUnavailable ErrorKind = "unavailable" // transport failure or service down
	KindValidation  ErrorKind = "validation"  // provider rejected the request shape
	KindProvider    ErrorKind = "provider"    // anything else, message kept verbatim
)

// ProviderError wraps an error from the wallet bridge, the swap aggregator
// or the RPC node. Message holds the provider's own wording untouched.
type ProviderError struct {
	Kind    ErrorKind
	Service string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(kind ErrorKind, service, message string) *ProviderError {
	return &ProviderError{Kind: kind, Service: service, Message: message}
}

// KindOf returns the ErrorKind carried by err, or "" when err is not a
// ProviderError.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
