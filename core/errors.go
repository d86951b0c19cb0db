package core

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ArgumentError reports an invalid user input that is not bound to a form field.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

// fieldErrorer is implemented by remote errors carrying field errors (eg: a 422 response).
type fieldErrorer interface {
	FieldErrors() map[string]string
}

// IsValidation reports whether err (or its cause) is a validation failure, local or remote.
func IsValidation(err error) bool {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors, *ValidationError:
		return true
	case fieldErrorer:
		return len(origErr.FieldErrors()) > 0
	}
	return false
}

// FieldMessages flattens a validation error into {field: message}.
// It returns nil when err is not a validation error.
func FieldMessages(err error, translator ut.Translator) map[string]string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			if translator != nil {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			} else {
				fldErrs[vErr.Field()] = vErr.Error()
			}
		}
		return fldErrs
	case *ValidationError:
		fldErrs := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		return fldErrs
	case fieldErrorer:
		return origErr.FieldErrors()
	}
	return nil
}
