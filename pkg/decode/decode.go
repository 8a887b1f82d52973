// Package decode reads and validates JSON request bodies.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody wraps every decoding and validation failure so handlers can
// map it to 400 with a single errors.Is check.
var ErrInvalidBody = errors.New("invalid request body")

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// JSON decodes the request body into T and validates it with v.
// Unknown fields are rejected.
func JSON[T any](r *http.Request, v *validator.Validate) (T, error) {
	var out T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return out, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if v != nil {
		if err := v.Struct(out); err != nil {
			return out, fmt.Errorf("%w: %s", ErrInvalidBody, describe(err))
		}
	}

	return out, nil
}

// NewValidator returns a validator that reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}
