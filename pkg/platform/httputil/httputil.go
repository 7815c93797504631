// Package httputil holds the JSON envelope, error-to-status mapping and request
// decoding shared by every handler.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "quorum/pkg/domain-errors"
)

// maxBodyBytes caps request bodies for every JSON endpoint.
const maxBodyBytes = 1 << 20

// Envelope is the uniform response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Normalizer is implemented by requests that trim or lower-case their fields
// before validation.
type Normalizer interface {
	Normalize()
}

// Validatable is implemented by requests with rules that struct tags cannot
// express. It runs after tag validation.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError maps err to a status and writes a failure envelope. Internal and
// timeout errors only ever expose a generic message.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok {
		de = dErrors.New(dErrors.CodeInternal, "internal error")
	}
	status := StatusFor(de.Code)
	msg := de.Message
	switch {
	case status == http.StatusInternalServerError:
		msg = "internal error"
	case de.Code == dErrors.CodeTimeout:
		msg = "the operation timed out, please retry"
	}
	WriteJSON(w, status, Envelope{Success: false, Message: msg, Code: string(de.Code)})
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized, dErrors.CodeExpired, dErrors.CodeMismatch,
		dErrors.CodeTooManyAttempts, dErrors.CodeAlreadyUsed, dErrors.CodeInvalidToken:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeEmailMismatch, dErrors.CodeRevoked:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeExhausted, dErrors.CodeElectionNotActive,
		dErrors.CodeAlreadyFinal, dErrors.CodeChangeLimitExceeded:
		return http.StatusConflict
	case dErrors.CodeDeliveryFailed, dErrors.CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes a JSON body into T, normalizes it and validates it.
// On failure it writes the error response and returns false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}

	if n, ok := any(&req).(Normalizer); ok {
		n.Normalize()
	}
	if err := Validate(&req); err != nil {
		logger.InfoContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}

// Validate runs struct tag validation followed by any Validatable hook.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return dErrors.New(dErrors.CodeValidation, describe(fieldErrs[0]))
		}
		return dErrors.New(dErrors.CodeValidation, "invalid request")
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
