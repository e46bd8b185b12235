package solix

import (
	"errors"
	"fmt"
)

// Standard solix error definitions

var (
	// ErrMissingFields indicates that one or more required request fields are absent or empty.
	ErrMissingFields = errors.New("solix: missing required fields")

	// ErrInvalidEncoding indicates malformed base58 or base64 text.
	ErrInvalidEncoding = errors.New("solix: invalid encoding")

	// ErrInvalidKey indicates key material of the wrong length or not on the ed25519 curve.
	ErrInvalidKey = errors.New("solix: invalid key material")

	// ErrInvalidSignature indicates a signature that does not decode to 64 bytes.
	ErrInvalidSignature = errors.New("solix: invalid signature")

	// ErrDomainRule indicates a well-formed value that breaks a domain rule (e.g. zero amount).
	ErrDomainRule = errors.New("solix: domain rule violation")

	// ErrDerivationFailed indicates that no bump seed produced an off-curve program address.
	ErrDerivationFailed = errors.New("solix: address derivation failed")

	// ErrInstructionBuild indicates that the program library rejected the instruction parameters.
	ErrInstructionBuild = errors.New("solix: instruction build failed")

	// ErrInvalidRequest indicates a request body that could not be decoded.
	ErrInvalidRequest = errors.New("solix: invalid request")

	// ErrKeyGeneration indicates that the entropy source failed while generating a keypair.
	ErrKeyGeneration = errors.New("solix: key generation failed")
)

// ErrorCode identifies the kind of failure carried by an Error.
type ErrorCode string

const (
	ErrCodeMissingField     ErrorCode = "MissingField"
	ErrCodeInvalidEncoding  ErrorCode = "InvalidEncoding"
	ErrCodeInvalidKey       ErrorCode = "InvalidKeyMaterial"
	ErrCodeInvalidSignature ErrorCode = "InvalidSignature"
	ErrCodeDomainRule       ErrorCode = "DomainRuleViolation"
	ErrCodeDerivation       ErrorCode = "DerivationError"
	ErrCodeInstructionBuild ErrorCode = "InstructionBuildError"
	ErrCodeInvalidRequest   ErrorCode = "InvalidRequest"
	ErrCodeKeyGeneration    ErrorCode = "KeyGenerationError"
)

var sentinels = map[ErrorCode]error{
	ErrCodeMissingField:     ErrMissingFields,
	ErrCodeInvalidEncoding:  ErrInvalidEncoding,
	ErrCodeInvalidKey:       ErrInvalidKey,
	ErrCodeInvalidSignature: ErrInvalidSignature,
	ErrCodeDomainRule:       ErrDomainRule,
	ErrCodeDerivation:       ErrDerivationFailed,
	ErrCodeInstructionBuild: ErrInstructionBuild,
	ErrCodeInvalidRequest:   ErrInvalidRequest,
	ErrCodeKeyGeneration:    ErrKeyGeneration,
}

// Error is the structured failure returned by every core operation.
// Message is safe to show to callers; Err may carry library detail and is
// only exposed through Error() and Unwrap().
type Error struct {
	// Code is the failure kind.
	Code ErrorCode

	// Field names the request field that failed, when there is one.
	Field string

	// Message is a human-readable description of the failure.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewError creates a new Error.
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithField records the offending request field and returns the error for chaining.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an Error against the sentinel for its code.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// PublicMessage returns the caller-facing text for err.
// Errors that are not *Error never leak their text.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
