// Package helpers provides shared helper functions for the solix HTTP transports.
// These helpers are used by the stdlib, Chi and Gin adapters to ensure consistent
// body decoding, status mapping and envelope writing.
package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mark3labs/solix"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 64 << 10

// ReadBody reads at most limit bytes of body.
//
// Returns a solix.Error with code InvalidRequest if the body is larger than limit
// or cannot be read.
func ReadBody(body io.Reader, limit int64) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeInvalidRequest, "Failed to read request body", err)
	}
	if int64(len(data)) > limit {
		return nil, solix.NewError(solix.ErrCodeInvalidRequest, "Request body too large", nil)
	}
	return data, nil
}

// DecodeJSON decodes a JSON request body into v. An empty body leaves v at its
// zero value so that required-field checks report what is missing.
//
// Returns a solix.Error with code InvalidRequest for malformed JSON or a value of
// the wrong type.
func DecodeJSON(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return solix.NewError(solix.ErrCodeInvalidRequest,
				fmt.Sprintf("Invalid value for field '%s'", typeErr.Field), err).WithField(typeErr.Field)
		}
		return solix.NewError(solix.ErrCodeInvalidRequest, "Invalid JSON request body", err)
	}
	return nil
}

// StatusFor maps a failure to its HTTP status. Caller mistakes are 400; failures
// inside derivation or instruction encoding are 500.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch solix.CodeOf(err) {
	case solix.ErrCodeMissingField,
		solix.ErrCodeInvalidEncoding,
		solix.ErrCodeInvalidKey,
		solix.ErrCodeInvalidSignature,
		solix.ErrCodeDomainRule,
		solix.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Outcome returns the metrics label for err: "ok" on success, otherwise the
// error code.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := solix.CodeOf(err); code != "" {
		return string(code)
	}
	return "internal"
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignore encoding errors - headers are already sent
	_ = json.NewEncoder(w).Encode(v)
}
