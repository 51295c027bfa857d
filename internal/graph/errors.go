package graph

import "errors"

var (
	// ErrNotAuthenticated gates the book and author mutations (createUser
	// and login are deliberately open).
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrWrongCredentials is returned for an unknown username and for a bad
	// password alike, so a caller cannot probe which usernames exist.
	ErrWrongCredentials = errors.New("wrong credentials")

	ErrAuthorNotFound = errors.New("author not found")
)
