package repo

import "errors"

// Sentinel errors returned by the repositories. Handlers map these to
// client-facing JSON errors; nothing below this layer leaks to clients.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrReadingNotFound   = errors.New("reading not found")
	ErrNotOwner          = errors.New("reading belongs to another user")
	ErrAmbiguousUsername = errors.New("username matches more than one account")
)
