package agenda

import "errors"

// Kind classifies why an operation was rejected or failed, so callers
// can branch without parsing messages.
type Kind int

const (
	// KindValidation marks input that fails a validation rule; no
	// state was changed.
	KindValidation Kind = iota + 1
	// KindConflict marks a duplicate-contact rejection; no state was
	// changed.
	KindConflict
	// KindNotFound marks an operation on a row that does not exist.
	KindNotFound
	// KindStoreFault marks an underlying database failure.
	KindStoreFault
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindStoreFault:
		return "store fault"
	}
	return "unknown"
}

// Error is the error type returned by the save and delete workflows.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind extracts the Kind from an error returned by this package,
// or 0 when the error is of another type.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalid(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}
