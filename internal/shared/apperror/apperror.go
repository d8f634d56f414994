package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error kinds shared by the author and book services.
// Callers match them with errors.Is, never by message.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateISBN        = errors.New("isbn already registered")
	ErrAuthorNotFound       = errors.New("referenced author not found")
	ErrConflictingReference = errors.New("resource is still referenced")
	ErrValidation           = errors.New("validation failed")
)

// Error is a failure of a known kind with a message naming the offending value.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the kind
func (e *Error) Unwrap() error {
	return e.Kind
}

// New builds an Error of the given kind
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id int64) error {
	return New(ErrNotFound, "the %s with id %d was not found", entity, id)
}

func DuplicateEmail(email string) error {
	return New(ErrDuplicateEmail, "the email %s is already registered, try another one", email)
}

func DuplicateISBN(isbn string) error {
	return New(ErrDuplicateISBN, "the isbn %s is already registered", isbn)
}

func AuthorNotFound(id int64) error {
	return New(ErrAuthorNotFound, "the author with id %d was not found", id)
}

func ConflictingReference(entity string, id int64, reason string) error {
	return New(ErrConflictingReference, "the %s with id %d cannot be deleted: %s", entity, id, reason)
}

// ════════════════════════════════════════════════════════════════
// VALIDATION FAILURE
// ════════════════════════════════════════════════════════════════

// ValidationError itemizes every offending field (JSON names, nested with dots).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid is a single-field validation failure
func Invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FromValidation converts an ozzo-validation result into a ValidationError.
// Internal rule errors are returned untouched.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return Invalid("_", err.Error())
	}

	fields := make(map[string]string)
	flatten("", errs, fields)
	return &ValidationError{Fields: fields}
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(name, nested, out)
			continue
		}
		out[name] = err.Error()
	}
}

// ════════════════════════════════════════════════════════════════
// TRANSPORT MAPPING
// ════════════════════════════════════════════════════════════════

var errorMap = []struct {
	Kind   error
	Status int
	Code   string
}{
	{ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrAuthorNotFound, http.StatusNotFound, "AUTHOR_NOT_FOUND"},
	{ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
	{ErrDuplicateISBN, http.StatusConflict, "DUPLICATE_ISBN"},
	{ErrConflictingReference, http.StatusConflict, "CONFLICTING_REFERENCE"},
}

// Status returns the HTTP status for err; unknown errors are 500.
func Status(err error) int {
	for _, m := range errorMap {
		if errors.Is(err, m.Kind) {
			return m.Status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the stable error code for err.
func Code(err error) string {
	for _, m := range errorMap {
		if errors.Is(err, m.Kind) {
			return m.Code
		}
	}
	return "INTERNAL_ERROR"
}

// IsKnown reports whether err belongs to the taxonomy
func IsKnown(err error) bool {
	return Status(err) != http.StatusInternalServerError
}

// Details returns per-field messages for validation failures, nil otherwise.
func Details(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
