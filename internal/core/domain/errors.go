package domain

import "net/http"

// Kind classifies an error into the categories the HTTP layer knows how to
// render. Every Kind maps to exactly one status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindPayloadTooLarge
	KindUnsupportedMedia
	KindRateLimited
	KindInternal
)

// HTTPStatus returns the status code for the kind. Upload constraint
// violations deliberately map to 400, matching the validation contract.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindPayloadTooLarge, KindUnsupportedMedia:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged application error carried from services and middleware
// to the central HTTP error handler.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Operational reports whether Message is safe to show to clients regardless
// of environment. Internal errors hide their message outside development.
func (e *Error) Operational() bool { return e.Kind != KindInternal }

// E builds a tagged error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation builds a 400 error carrying field-level violations.
func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation error", Fields: fields}
}

// Internal wraps an unexpected error so its cause is logged but not echoed
// to clients outside development.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// Sentinel errors shared across services, repositories and middleware.
// Matching is by identity via errors.Is.
var (
	ErrEmailTaken         = E(KindConflict, "user with this email already exists")
	ErrInvalidCredentials = E(KindUnauthenticated, "invalid email or password")
	ErrInvalidToken       = E(KindUnauthenticated, "invalid token")
	ErrTokenExpired       = E(KindUnauthenticated, "token expired")
	ErrUserNotFound       = E(KindNotFound, "user not found")
	ErrArticleNotFound    = E(KindNotFound, "article not found")
	ErrNotArticleAuthor   = E(KindForbidden, "you can only edit articles you have authored")
	ErrAdminOnly          = E(KindForbidden, "only admins can delete articles")
)
