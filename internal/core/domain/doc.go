// Package domain defines the core domain models of the login challenge.
//
// Domain models are plain values without IO dependencies. This package contains:
//
//   - Credentials: the transient id/password pair of a login attempt
//   - SessionToken: the opaque proof of authentication
//   - User: the profile of the authenticated user
//   - Errors: the error taxonomy and its classifier
package domain
