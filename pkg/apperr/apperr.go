package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP boundary can map it
// to a status code without string matching.
type Kind int

const (
	Unknown Kind = iota
	Validation
	Conflict
	NotFound
	ProductMismatch
	InsufficientStock
	Constraint
	Connectivity
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case ProductMismatch:
		return "product_mismatch"
	case InsufficientStock:
		return "insufficient_stock"
	case Constraint:
		return "constraint_violation"
	case Connectivity:
		return "connectivity"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the message and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or Unknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
