package domain

import (
	"errors"
	"fmt"
	"log/slog"
)

// DomainError is a failure with a stable code. Two DomainErrors match under
// errors.Is when their codes match, so copies made by WithDetails and
// WithCause still match their sentinel.
type DomainError struct {
	Code    string // e.g. "LC-AUTH-4010"
	Message string
	Details string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func (e *DomainError) Unwrap() error { return e.Cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// LogValue groups the code and message; the cause is logged only when set.
func (e *DomainError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", e.Code),
		slog.String("message", e.Message),
	}
	if e.Details != "" {
		attrs = append(attrs, slog.String("details", e.Details))
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	return slog.GroupValue(attrs...)
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasCode reports whether err's chain holds a DomainError with code.
func HasCode(err error, code string) bool {
	c := CodeOf(err)
	return c != "" && c == code
}

// Taxonomy errors. Every failure surfaced by the core maps to one of these.
var (
	// ErrLoginRejected means the credentials did not match.
	ErrLoginRejected = NewDomainError("LC-AUTH-4010", "login rejected")

	// ErrUnauthenticated means the operation needs a session and there is none.
	ErrUnauthenticated = NewDomainError("LC-AUTH-4011", "not authenticated")

	// ErrNetwork covers transport failures, including an interrupted wait.
	ErrNetwork = NewDomainError("LC-NET-5040", "network error")

	// ErrServerInternal means the remote side failed.
	ErrServerInternal = NewDomainError("LC-SRV-5000", "server error")

	// ErrSystemFault is the catch-all.
	ErrSystemFault = NewDomainError("LC-SYS-5000", "system error")
)

// Control errors. They never describe a failed operation.
var (
	// ErrOperationInProgress rejects a call whose operation is already
	// running. Nothing was done.
	ErrOperationInProgress = NewDomainError("LC-OP-4090", "operation already in progress")

	ErrInvalidArgument = NewDomainError("LC-ARG-1001", "invalid argument")
)
