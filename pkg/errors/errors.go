// Package errors provides structured error types for spritestrip.
//
// Every failure an operation can report carries a machine-readable [Code],
// so the batch runner can log and tally failures per category while the
// CLI shows only the human-readable part.
//
// # Error Codes
//
// The compositing taxonomy maps onto codes as follows:
//   - DecodeError: DECODE_FAILED, FILE_NOT_FOUND
//   - CapacityError: CAPACITY_EXCEEDED
//   - GeometryContractViolation: INVALID_GEOMETRY
//   - EncodeError: ENCODE_FAILED
//
// Input problems found before any image is touched use the INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCapacity, "need %d frames, overlay holds %d", want, have)
//	if errors.IsCapacity(err) {
//	    // skip the item
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"

	// Compositing errors
	ErrCodeGeometry Code = "INVALID_GEOMETRY"
	ErrCodeCapacity Code = "CAPACITY_EXCEEDED"

	// Codec errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeDecode       Code = "DECODE_FAILED"
	ErrCodeEncode       Code = "ENCODE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsDecode reports whether err means a source image could not be read.
func IsDecode(err error) bool {
	code := GetCode(err)
	return code == ErrCodeDecode || code == ErrCodeFileNotFound
}

// IsCapacity reports whether err is a frame capacity precondition failure.
func IsCapacity(err error) bool { return Is(err, ErrCodeCapacity) }

// IsGeometry reports whether err is a rejected out-of-bounds region.
func IsGeometry(err error) bool { return Is(err, ErrCodeGeometry) }

// IsEncode reports whether err happened while writing a result.
func IsEncode(err error) bool { return Is(err, ErrCodeEncode) }
