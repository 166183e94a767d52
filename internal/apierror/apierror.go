// Package apierror provides the error taxonomy of the back office and the
// standardized error envelopes for the API.
// Every failure shown to a user goes through this package so that messages stay
// short and never leak internal details (stack traces, SQL, driver errors).
package apierror

import (
	"errors"
	"net/http"
)

// MensagemGenerica is shown for any failure that is not a domain error.
const MensagemGenerica = "Algo deu errado. Verifique os campos e tente novamente."

// ─── Envelopes ───────────────────────────────────────────────────────────────

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}

// ─── Domain errors ───────────────────────────────────────────────────────────

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindBusinessRule
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission_denied"
	case KindBusinessRule:
		return "business_rule"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error is a domain failure. Message is user-safe; Err holds the technical
// cause and is only ever logged.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so package-level
// sentinels built with these constructors work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func Invalid(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

// InvalidFields reports several field failures at once.
func InvalidFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Erro de validação", Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden() *Error {
	return &Error{Kind: KindPermission, Message: "Operação não permitida para o seu perfil."}
}

func BusinessRule(msg string) *Error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

// Conflict is a storage integrity failure (unique key already taken).
func Conflict(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// ─── Inspection ──────────────────────────────────────────────────────────────

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// UserMessage returns the text that may be shown to an operator.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return MensagemGenerica
}

func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindBusinessRule, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Body builds the JSON envelope for err.
func Body(err error) any {
	var e *Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		return NewValidation(e.Fields)
	}
	if errors.As(err, &e) && e.Field != "" {
		return NewValidation(map[string]string{e.Field: e.Message})
	}
	return New(UserMessage(err))
}
