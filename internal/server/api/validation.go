package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
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

// normalizer is implemented by requests that clean up input before validation.
type normalizer interface {
	normalize()
}

// decode reads a JSON body into dst, normalizes it and runs struct
// validation. With strict set, unknown fields are rejected.
func (s *HTTPServer) decode(r *http.Request, dst any, strict bool) error {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return common.NewValidationError("body", "Request body is required")
		case errors.As(err, &maxErr):
			return common.NewValidationError("body", "Request body too large")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return common.NewValidationError(field, "Unknown field")
		default:
			return common.NewValidationError("body", "Malformed JSON")
		}
	}

	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate: %w", err)
		}
		out := &common.ValidationError{Message: "Validation failed"}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, common.FieldError{Path: fe.Field(), Message: fieldMessage(fe)})
		}
		return out
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Must be a valid email"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
