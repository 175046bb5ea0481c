package apperr

import (
	"errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrEmailDelivery       = errors.New("email delivery error")
	ErrStorage             = errors.New("storage error")
	ErrBookingFinalization = errors.New("booking finalization failed")
)

// Error carries a kind, the message shown to the caller and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Kind.Error() + ": " + e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
