// Package errors provides structured error types for salesmap.
//
// Every failure that ends a run carries a machine-readable [Code] so the CLI
// can report it consistently and tests can assert on the failure category
// without matching message text.
//
// # Error Codes
//
// The run-terminating codes mirror the three ways a visualization can fail:
//   - FETCH_ERROR: the dataset could not be retrieved or was not valid JSON
//   - EMPTY_TREE: the dataset contains no leaf records
//   - NON_POSITIVE_VALUE: a leaf record has a value that cannot be drawn
//
// Input validation failures use the INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyTree, "dataset %q has no leaves", name)
//	if errors.Is(err, errors.ErrCodeEmptyTree) {
//	    // Surface a visible error instead of drawing an empty canvas
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "fetch %s", url)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidTiling  Code = "INVALID_TILING"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"

	// Dataset errors
	ErrCodeFetch            Code = "FETCH_ERROR"
	ErrCodeEmptyTree        Code = "EMPTY_TREE"
	ErrCodeNonPositiveValue Code = "NON_POSITIVE_VALUE"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a [Code], a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and a message to cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code, so a
// FILE_NOT_FOUND wrapped in INVALID_CONFIG still matches both.
func Is(err error, code Code) bool {
	for _, e := range chain(err) {
		if e.Code == code {
			return true
		}
	}
	return false
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	if c := chain(err); len(c) > 0 {
		return c[0].Code
	}
	return ""
}

// UserMessage returns the outermost message without the code prefix, or
// err.Error() for foreign errors.
func UserMessage(err error) string {
	if c := chain(err); len(c) > 0 {
		return c[0].Message
	}
	return err.Error()
}

// Process exit statuses, grouped by failure category.
const (
	ExitOK      = 0
	ExitFailure = 1 // internal or unclassified
	ExitUsage   = 2 // rejected options, config or palette
	ExitFetch   = 3 // dataset could not be obtained
	ExitData    = 4 // dataset obtained but cannot be drawn
)

// ExitCode maps err to a process exit status using its outermost code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetCode(err) {
	case ErrCodeFetch, ErrCodeNotFound, ErrCodeFileNotFound:
		return ExitFetch
	case ErrCodeEmptyTree, ErrCodeNonPositiveValue:
		return ExitData
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidStyle, ErrCodeInvalidVizType,
		ErrCodeInvalidTiling, ErrCodeInvalidConfig, ErrCodeInvalidPalette:
		return ExitUsage
	}
	return ExitFailure
}

// chain lists every *Error reachable from err, outermost first.
func chain(err error) []*Error {
	var out []*Error
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		out = append(out, e)
		err = e.Cause
	}
	return out
}

// StatusError records a non-2xx HTTP status returned by the dataset host.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Temporary reports whether the status is worth retrying (5xx).
func (e *StatusError) Temporary() bool { return e.StatusCode >= 500 }
