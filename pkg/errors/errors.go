// Package errors provides structured error types for csrstore.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Diagnostics that name the input format and line of a parse failure
//   - Error wrapping with context preservation
//
// # Taxonomy
//
// Graph construction fails with one of three typed errors:
//   - [ParseError]: malformed token, out-of-range id, truncated stream or bad
//     magic number, reported with the format name and 1-based line number
//   - [StructureError]: declared and observed counts disagree, or a CSR
//     invariant is violated during conversion
//   - [IOError]: a file cannot be opened, read or written
//
// Each of them reports a [Code], so [Is] works uniformly:
//
//	g, err := formats.Load("web.mtx", graph.Property{})
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // inspect the *ParseError for the line number
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown output format: %s", ext)
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode snapshot")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction errors
	ErrCodeParse     Code = "PARSE_ERROR"
	ErrCodeStructure Code = "STRUCTURE_ERROR"
	ErrCodeIO        Code = "IO_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// coder is implemented by every typed error in this package.
type coder interface {
	error
	ErrCode() Code
}

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

// ErrCode returns the machine-readable error code.
func (e *Error) ErrCode() Code { return e.Code }

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
// It walks the error chain looking for any error in this package with a
// matching code, so a ParseError wrapped by fmt.Errorf still matches.
func Is(err error, code Code) bool {
	for err != nil {
		if c, ok := err.(coder); ok && c.ErrCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var c coder
	if errors.As(err, &c) {
		return c.ErrCode()
	}
	return ""
}

// As finds the first error in err's chain that matches target. It is the
// standard library's errors.As, re-exported so callers importing this
// package under the name errors need no second import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Reason classifies why a parser rejected its input.
type Reason string

// Parse failure reasons.
const (
	ReasonMalformedHeader Reason = "malformed header"
	ReasonBadToken        Reason = "non-numeric token"
	ReasonOutOfRange      Reason = "vertex id out of range"
	ReasonTruncated       Reason = "premature end of input"
	ReasonBadMagic        Reason = "bad magic number"
)

// ParseError reports a rejected input file. Line is 1-based; it is 0 for
// binary inputs where lines are meaningless.
type ParseError struct {
	Format string
	Line   int
	Reason Reason
	Detail string
}

// NewParseError builds a ParseError with a formatted detail message.
func NewParseError(format string, line int, reason Reason, detail string, args ...any) *ParseError {
	return &ParseError{
		Format: format,
		Line:   line,
		Reason: reason,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Format, e.Reason)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d: %s", e.Format, e.Line, e.Reason)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ErrCode returns ErrCodeParse.
func (e *ParseError) ErrCode() Code { return ErrCodeParse }

// StructureError reports inconsistent declared and observed counts, or a
// CSR invariant that does not hold.
type StructureError struct {
	Detail string
}

// NewStructureError builds a StructureError with a formatted detail message.
func NewStructureError(format string, args ...any) *StructureError {
	return &StructureError{Detail: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *StructureError) Error() string { return "structure: " + e.Detail }

// ErrCode returns ErrCodeStructure.
func (e *StructureError) ErrCode() Code { return ErrCodeStructure }

// IOError reports a failure to open, read or write a file.
type IOError struct {
	Op   string // "open", "read", "write", "create", "rename"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// ErrCode returns ErrCodeIO.
func (e *IOError) ErrCode() Code { return ErrCodeIO }

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err as an IOError. It returns nil for a nil err.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
