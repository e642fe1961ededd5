package service

import "errors"

// Failure kinds surfaced by the services. The handler layer maps each one
// to an HTTP status; anything else is treated as an internal error.
var (
	// ErrUnauthenticated is returned when a bearer token resolves to no user.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrInvalidCredentials is returned on login failure. It is deliberately
	// the same for an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrContactNotFound is returned when a contact is absent or owned by
	// another user; the two cases are indistinguishable to the caller.
	ErrContactNotFound = errors.New("contact not found")
	// ErrAddressNotFound is returned when an address is absent or attached
	// to a contact outside the caller's ownership chain.
	ErrAddressNotFound = errors.New("address not found")
)
