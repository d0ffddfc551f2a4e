package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"devevents/internal/domain"
)

// MaxJSONBodyBytes caps JSON request bodies.
const MaxJSONBodyBytes = 1 << 20

const unknownFieldPrefix = "json: unknown field "

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes a JSON body into dest, rejecting unknown fields and bodies
// over MaxJSONBodyBytes, then runs dest's Validate when it is a Validator. Failures are
// written as 400; decode failures that concern one field are reported against it.
// Returns false when a response has been written.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeDecodeError(w, err)
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is required")
	case errors.As(err, &sizeErr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("request body must not exceed %d bytes", sizeErr.Limit))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		WriteValidationError(w, domain.NewValidationError(typeErr.Field, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())))
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		WriteValidationError(w, domain.NewValidationError(field, field+" is not a recognised field"))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is not valid JSON")
	default:
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
	}
}
