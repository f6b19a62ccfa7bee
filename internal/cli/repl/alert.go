package repl

import (
	"errors"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

// Alert is the user-facing description of a failed operation.
type Alert struct {
	Title   string
	Message string
}

// String renders the alert on one line.
func (a Alert) String() string {
	return a.Title + ": " + a.Message
}

// AlertFor returns the alert shown for err. Only the error kind is
// revealed; the cause is left to the log.
func AlertFor(err error) Alert {
	if errors.Is(err, domain.ErrOperationInProgress) {
		return Alert{Title: "Busy", Message: "The previous request is still running."}
	}

	switch domain.Classify(err) {
	case domain.KindLoginRejected:
		return Alert{Title: "Login error", Message: "The ID or password is incorrect."}
	case domain.KindUnauthenticated:
		return Alert{Title: "Authentication error", Message: "Please log in again."}
	case domain.KindNetwork:
		return Alert{Title: "Network error", Message: "Communication failed. Check your network connection."}
	case domain.KindServerInternal:
		return Alert{Title: "Server error", Message: "Please try again later."}
	default:
		return Alert{Title: "System error", Message: "An error occurred."}
	}
}
