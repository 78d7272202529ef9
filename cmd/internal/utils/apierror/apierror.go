package apierror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes: a JSON-serializable
// body plus the HTTP status it should be sent with.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *simpleError) Code() int {
	return e.Status
}

func (e *simpleError) Error() string {
	return e.Message
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{Status: code, Message: message}
}

func NewMissingParamError(param string) ErrorResponse {
	return &simpleError{Status: 400, Message: fmt.Sprintf("Missing required parameter: %s", param)}
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed request body")
	NotFoundError       = NewSimple(404, "Not found")
	InternalServerError = NewSimple(500, "Internal server error")
	EndBeforeStartError = NewSimple(400, "endDate must not precede date")
)

type validationError struct {
	Fields []string `json:"invalid_fields"`
}

func (e *validationError) Code() int {
	return 400
}

func (e *validationError) Error() string {
	return "Validation failed: " + strings.Join(e.Fields, ", ")
}

// FromValidationError flattens a validator.ValidationErrors into a 400
// response naming the offending fields.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	return &validationError{Fields: fields}
}
