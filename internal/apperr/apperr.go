package apperr

import "errors"

// Kind tags a failure for the dispatcher. Every resolver failure carries one;
// the transport never sees a raw error from the catalog.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthFailure
	KindInvalidArgument
	KindNotFound
	KindCatalogUnavailable
)

// Error is a tagged failure with the exact user-facing message. The wrapped
// cause (catalog driver errors and the like) is for logs only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func AuthFailure(msg string) *Error {
	return &Error{Kind: KindAuthFailure, Message: msg}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func CatalogUnavailable(msg string, cause error) *Error {
	return &Error{Kind: KindCatalogUnavailable, Message: msg, cause: cause}
}

// KindOf extracts the kind from an error chain, KindUnknown when untagged.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
