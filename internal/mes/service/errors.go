package service

import (
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

// Error kinds handlers map to status codes
var (
	ErrNotFound          = repository.ErrNotFound
	ErrBadInput          = errors.New("bad input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Error a client-facing message tagged with one of the kinds above
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Msg: what + " not found"}
}

func badInput(format string, args ...any) error {
	return &Error{Kind: ErrBadInput, Msg: fmt.Sprintf(format, args...)}
}

func unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Msg: msg}
}

func invalidTransition(what, from, to string) error {
	return &Error{Kind: ErrInvalidTransition, Msg: fmt.Sprintf("%s cannot move from %s to %s", what, from, to)}
}

// lookup turns a repository miss into a named not-found error
func lookup(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(what)
	}
	return err
}
