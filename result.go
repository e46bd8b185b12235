package solix

import (
	"encoding/json"
	"errors"
)

// Result is the tagged success/failure value returned by every operation.
// It marshals to the wire envelope: {"success":true,"data":...} or
// {"success":false,"error":"..."}.
type Result[T any] struct {
	Success bool
	Data    T
	Err     error
}

// Ok wraps data in a successful Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps err in a failed Result.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{Err: err}
}

// Unwrap returns the data and error held by the Result.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err
}

// Code returns the failure code, or "" for a successful Result.
func (r Result[T]) Code() ErrorCode {
	if r.Success {
		return ""
	}
	return CodeOf(r.Err)
}

// MarshalJSON implements json.Marshaler.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    T    `json:"data"`
		}{true, r.Data})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, PublicMessage(r.Err)})
}

// Envelope is the decoded form of a Result as seen by a client.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}
