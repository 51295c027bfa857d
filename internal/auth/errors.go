package auth

import "errors"

var (
	// ErrInvalidToken is returned for any bearer token that fails
	// verification. It deliberately carries no detail about why.
	ErrInvalidToken = errors.New("invalid token")
)
