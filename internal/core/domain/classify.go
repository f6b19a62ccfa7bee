package domain

import (
	"context"
	"errors"
)

// ErrorKind is the fixed failure taxonomy consumed by presentation code.
// Kinds are listed in classification precedence.
type ErrorKind int

const (
	KindLoginRejected ErrorKind = iota + 1
	KindUnauthenticated
	KindNetwork
	KindServerInternal
	KindSystemFault
)

// Kinds returns every kind in precedence order.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindLoginRejected,
		KindUnauthenticated,
		KindNetwork,
		KindServerInternal,
		KindSystemFault,
	}
}

// String returns the stable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindLoginRejected:
		return "login_rejected"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindServerInternal:
		return "server_internal"
	case KindSystemFault:
		return "system_fault"
	default:
		return "unknown"
	}
}

// Sentinel returns the taxonomy error of the kind.
// Unknown kinds map to ErrSystemFault.
func (k ErrorKind) Sentinel() *DomainError {
	switch k {
	case KindLoginRejected:
		return ErrLoginRejected
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindNetwork:
		return ErrNetwork
	case KindServerInternal:
		return ErrServerInternal
	default:
		return ErrSystemFault
	}
}

// Classify maps an arbitrary failure to exactly one ErrorKind.
//
// The chain is checked in precedence order, so a LoginRejected error wrapping a
// network cause is still LoginRejected. Context cancellation and deadlines count
// as network failures.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindSystemFault
	case errors.Is(err, ErrLoginRejected):
		return KindLoginRejected
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrNetwork),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	case errors.Is(err, ErrServerInternal):
		return KindServerInternal
	default:
		return KindSystemFault
	}
}

// Classified returns err as a taxonomy error.
//
// An error whose own code already belongs to the taxonomy is returned as is.
// Anything else is wrapped by the sentinel of its kind.
func Classified(err error) *DomainError {
	if err == nil {
		return nil
	}
	kind := Classify(err)
	var de *DomainError
	if errors.As(err, &de) && de.Code == kind.Sentinel().Code {
		return de
	}
	return kind.Sentinel().WithCause(err)
}
