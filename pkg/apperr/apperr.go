package apperr

import "errors"

// Error kinds shared by repositories, use cases and handlers.
var (
	ErrConnection  = errors.New("database connection failed")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failed")
	ErrConflict    = errors.New("already exists")
	ErrTimeout     = errors.New("timed out")
	ErrAnalysis    = errors.New("analysis failed")
	ErrUnsupported = errors.New("unsupported media")
)

// Error carries a kind, a human readable detail and an optional cause.
type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Detail + ": " + e.Cause.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// New returns an error of the given kind without an underlying cause.
func New(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap returns an error of the given kind wrapping cause.
func Wrap(kind, cause error, detail string) error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

// Is reports whether err is of any of the given kinds.
func Is(err error, kinds ...error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
