package apperr

import "errors"

// Kind classifies a failure so callers can branch on it instead of
// parsing error text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: duel, quiz or question does not exist.
	KindNotFound
	// KindInvalidTransition: the operation is not legal in the duel's current state.
	KindInvalidTransition
	// KindForbidden: caller is not a participant, or tried to join their own duel.
	KindForbidden
	// KindValidation: malformed request payload.
	KindValidation
	// KindConflict: a conditional update lost a race, or a resubmission was rejected.
	KindConflict
	// KindUnavailable: infrastructure failure (store unreachable, provider down).
	KindUnavailable
)

// Error carries a kind and a user-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error          { return New(KindNotFound, message) }
func InvalidTransition(message string) *Error { return New(KindInvalidTransition, message) }
func Forbidden(message string) *Error         { return New(KindForbidden, message) }
func Validation(message string) *Error        { return New(KindValidation, message) }
func Conflict(message string) *Error          { return New(KindConflict, message) }
func Unavailable(message string, err error) *Error {
	return Wrap(KindUnavailable, message, err)
}

// KindOf extracts the kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Message returns the user-safe message for an error chain. Unknown and
// unavailable errors are collapsed to a generic message so internal detail
// does not leak to clients.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUnavailable && appErr.Kind != KindUnknown {
		return appErr.Message
	}
	return "internal server error"
}
