package recovery

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is the expected "no record" case, not a failure.
var ErrFileNotFound = errors.New("recovery file not found")

// ErrorKind classifies recovery failures for API clients.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTooLarge   ErrorKind = "too_large"
	KindIO         ErrorKind = "io"
	KindParse      ErrorKind = "parse"
)

// Error is a typed recovery failure.
type Error struct {
	Kind    ErrorKind
	Name    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recovery %s error for %q: %s: %v", e.Kind, e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("recovery %s error for %q: %s", e.Kind, e.Name, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a recovery *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == kind
}
