// Package validate collects field-level input errors behind a domain sentinel.
//
// Struct-level rules live in `validate` tags and are checked with go-playground/validator;
// rules that need the database are added by hand with Add.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/pkg/response"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

type Error struct {
	sentinel error
	Fields   []response.ValidationError
}

// New starts an empty error that unwraps to sentinel once a field is added.
func New(sentinel error) *Error {
	return &Error{sentinel: sentinel}
}

// Struct checks the validate tags on s and returns the collected field errors.
// A cross-field failure is dropped when the field it compares against already failed.
func Struct(sentinel error, s interface{}) *Error {
	e := New(sentinel)

	err := structValidator.Struct(s)
	if err == nil {
		return e
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		e.Add("", "invalid", err.Error())
		return e
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.StructField()] = true
	}

	for _, fe := range fieldErrs {
		if isCrossField(fe.Tag()) && failed[fe.Param()] {
			continue
		}
		e.Add(fe.Field(), fe.Tag(), message(fe, paramName(s, fe.Param())))
	}
	return e
}

func (e *Error) Add(field, code, message string) {
	e.Fields = append(e.Fields, response.ValidationError{Field: field, Message: message, Code: code})
}

// Has reports whether field already carries an error.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when nothing was added.
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return e.sentinel.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return e.sentinel
}

func isCrossField(tag string) bool {
	switch tag {
	case "eqfield", "nefield", "gtfield", "gtefield", "ltfield", "ltefield":
		return true
	}
	return false
}

// paramName maps a struct field named in a cross-field tag to its json name.
func paramName(s interface{}, param string) string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return param
	}
	if f, ok := t.FieldByName(param); ok {
		return jsonName(f)
	}
	return param
}

func message(fe validator.FieldError, param string) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), param)
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), param)
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(param, " ", ", "))
	case "gtefield":
		return fmt.Sprintf("%s must not be lower than %s", fe.Field(), param)
	case "ltefield":
		return fmt.Sprintf("%s must not be greater than %s", fe.Field(), param)
	case "url":
		return fe.Field() + " must be a valid URL"
	}
	return fe.Field() + " is invalid"
}
