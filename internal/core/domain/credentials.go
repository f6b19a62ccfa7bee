package domain

import "log/slog"

// Credentials is the id/password pair of a single login attempt.
// It is never stored.
type Credentials struct {
	ID       string
	Password string
}

// String implements fmt.Stringer without revealing the password.
func (c Credentials) String() string {
	return "Credentials{ID:" + c.ID + ", Password:***}"
}

// LogValue implements slog.LogValuer.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.Bool("password_set", c.Password != ""),
	)
}
