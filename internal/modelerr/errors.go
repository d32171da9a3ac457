package modelerr

import (
	"errors"
	"fmt"
)

// Code categorizes model errors.
type Code string

const (
	// CodeMalformedInput indicates a required key is missing or has the wrong type.
	CodeMalformedInput Code = "MALFORMED_INPUT"

	// CodeOutOfRange indicates an index that does not exist in the (padded) structure.
	CodeOutOfRange Code = "OUT_OF_RANGE"

	// CodeUnknownMicroplate indicates a microplate name unknown to the experiment.
	CodeUnknownMicroplate Code = "UNKNOWN_MICROPLATE"

	// CodeInvalidAddress indicates a malformed well coordinate.
	CodeInvalidAddress Code = "INVALID_ADDRESS"

	// CodeInvalidKey indicates a key kind the axis does not accept.
	CodeInvalidKey Code = "INVALID_KEY"

	// CodeShapeMismatch indicates a replacement array whose shape differs
	// from the array it replaces.
	CodeShapeMismatch Code = "SHAPE_MISMATCH"
)

// Error is the single error type produced by the model packages.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Details contains additional context (axis, index, name, path).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMalformedInput creates an Error for a structurally invalid record.
// The path locates the offending element, e.g. "iterations[0].spreadsheets[1]".
func NewMalformedInput(path, message string) *Error {
	msg := message
	if path != "" {
		msg = path + ": " + message
	}
	return &Error{
		Code:    CodeMalformedInput,
		Message: msg,
		Details: map[string]string{"path": path},
	}
}

// NewOutOfRange creates an Error for an index outside of an axis.
func NewOutOfRange(axis string, index, size int) *Error {
	return &Error{
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("%s index %d out of range [0, %d)", axis, index, size),
		Details: map[string]string{
			"axis":  axis,
			"index": fmt.Sprintf("%d", index),
			"size":  fmt.Sprintf("%d", size),
		},
	}
}

// NewUnknownMicroplate creates an Error for an unrecognized microplate name.
func NewUnknownMicroplate(name string) *Error {
	return &Error{
		Code:    CodeUnknownMicroplate,
		Message: fmt.Sprintf("unknown microplate %q", name),
		Details: map[string]string{"microplate": name},
	}
}

// NewInvalidAddress creates an Error for a malformed well coordinate.
func NewInvalidAddress(address string) *Error {
	return &Error{
		Code:    CodeInvalidAddress,
		Message: fmt.Sprintf("invalid well address %q", address),
		Details: map[string]string{"address": address},
	}
}

// NewInvalidKey creates an Error for a key kind the axis does not support.
func NewInvalidKey(axis, message string) *Error {
	return &Error{
		Code:    CodeInvalidKey,
		Message: fmt.Sprintf("%s: %s", axis, message),
		Details: map[string]string{"axis": axis},
	}
}

// NewShapeMismatch creates an Error for a replacement array of the wrong shape.
func NewShapeMismatch(want, got []int) *Error {
	return &Error{
		Code:    CodeShapeMismatch,
		Message: fmt.Sprintf("expected shape %v, got %v", want, got),
		Details: map[string]string{
			"want": fmt.Sprint(want),
			"got":  fmt.Sprint(got),
		},
	}
}

// HasCode reports whether err is, or wraps, an *Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsMalformedInput returns true if the error is a malformed input error.
func IsMalformedInput(err error) bool { return HasCode(err, CodeMalformedInput) }

// IsOutOfRange returns true if the error is an out-of-range error.
func IsOutOfRange(err error) bool { return HasCode(err, CodeOutOfRange) }

// IsUnknownMicroplate returns true if the error is an unknown microplate error.
func IsUnknownMicroplate(err error) bool { return HasCode(err, CodeUnknownMicroplate) }

// IsInvalidAddress returns true if the error is an invalid well address error.
func IsInvalidAddress(err error) bool { return HasCode(err, CodeInvalidAddress) }

// IsInvalidKey returns true if the error is an invalid key error.
func IsInvalidKey(err error) bool { return HasCode(err, CodeInvalidKey) }

// IsShapeMismatch returns true if the error is a shape mismatch error.
func IsShapeMismatch(err error) bool { return HasCode(err, CodeShapeMismatch) }
