package model

// ErrValidation reports a document that failed schema validation before being
// written. The message carries the failing field so callers can surface it to
// the client unchanged.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
