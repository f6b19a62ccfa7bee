package domain

// User is the profile of the authenticated user.
//
// A User is a value: a later fetch replaces it wholesale and never mutates
// a previously returned one.
type User struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Introduction string `json:"introduction" yaml:"introduction"`
}

// NewUser creates a validated User.
func NewUser(id, name, introduction string) (User, error) {
	u := User{
		ID:           id,
		Name:         name,
		Introduction: introduction,
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate checks the user fields.
func (u User) Validate() error {
	if u.ID == "" {
		return ErrInvalidArgument.WithDetails("user id is required")
	}
	return nil
}

// IsZero reports whether u is the zero User.
func (u User) IsZero() bool {
	return u == User{}
}
