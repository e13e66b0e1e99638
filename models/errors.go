// path: models/errors.go
package models

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup by id that matched nothing. Queries turn it
// into a null result; mutations report it.
var ErrNotFound = errors.New("not found")

// NotFoundError is what a mutation reports when its target id matches
// nothing. It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "NOT_FOUND"}
}

// ValidationError reports a violated field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": "VALIDATION_ERROR"}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

const (
	AuthUnauthenticated = "unauthenticated"
	AuthForbidden       = "forbidden"
)

// AuthError is returned by the access gate. Reason is one of
// AuthUnauthenticated or AuthForbidden.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case AuthUnauthenticated:
		return "authentication required"
	case AuthForbidden:
		return "insufficient permissions for this operation"
	}
	return e.Reason
}

func (e *AuthError) Extensions() map[string]interface{} {
	if e.Reason == AuthForbidden {
		return map[string]interface{}{"code": "FORBIDDEN"}
	}
	return map[string]interface{}{"code": "UNAUTHENTICATED"}
}

// UpstreamError wraps a failed call to the document store or the identity
// provider.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "UPSTREAM_ERROR"}
}

func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
