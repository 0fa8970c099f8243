package users

import (
	"fmt"

	"github.com/nfrund/userdesk/internal/domain"
)

// UserError is a failure whose message is written for the person who
// triggered it and is shown as is. The cause stays reachable through
// errors.Is and errors.As but is not part of the message.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Err }

func userErrorf(cause error, format string, args ...any) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...), Err: cause}
}

// NotFoundError reports that no user has the given id. It matches
// domain.ErrNotFound.
func NotFoundError(id string) error {
	return userErrorf(domain.ErrNotFound, "User %s not found", id)
}
