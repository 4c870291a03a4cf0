package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to fetch")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFormat, "test"),
			expected: ErrCodeInvalidFormat,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("market", 7, ReasonBadToken, "got %q", "x1")

	want := `market:7: non-numeric token: got "x1"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrCodeParse) {
		t.Error("Is(err, ErrCodeParse) = false, want true")
	}

	wrapped := fmt.Errorf("load web.mtx: %w", err)
	var pe *ParseError
	if !errors.As(wrapped, &pe) {
		t.Fatal("errors.As should find *ParseError through fmt.Errorf")
	}
	if pe.Line != 7 || pe.Reason != ReasonBadToken {
		t.Errorf("ParseError = %+v", pe)
	}
	if GetCode(wrapped) != ErrCodeParse {
		t.Errorf("GetCode() = %v, want %v", GetCode(wrapped), ErrCodeParse)
	}
}

func TestParseErrorWithoutLine(t *testing.T) {
	err := NewParseError("binary", 0, ReasonBadMagic, "")
	if err.Error() != "binary: bad magic number" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestStructureError(t *testing.T) {
	err := NewStructureError("declared %d edges, observed %d", 4, 3)
	if err.Error() != "structure: declared 4 edges, observed 3" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, ErrCodeStructure) {
		t.Error("Is(err, ErrCodeStructure) = false, want true")
	}
	if Is(err, ErrCodeParse) {
		t.Error("StructureError should not match ErrCodeParse")
	}
}

func TestIOError(t *testing.T) {
	if NewIOError("open", "x", nil) != nil {
		t.Error("NewIOError(nil) should return nil")
	}

	cause := os.ErrNotExist
	err := NewIOError("open", "/missing.mtx", cause)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("IOError should unwrap to its cause")
	}
	if !Is(err, ErrCodeIO) {
		t.Error("Is(err, ErrCodeIO) = false, want true")
	}
	if err.Error() != "open /missing.mtx: file does not exist" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("load: %w", NewParseError("snap", 4, ReasonBadToken, "x"))
	var pe *ParseError
	if !As(err, &pe) {
		t.Fatal("As should find the wrapped ParseError")
	}
	if pe.Line != 4 {
		t.Errorf("Line = %d, want 4", pe.Line)
	}

	var se *StructureError
	if As(err, &se) {
		t.Error("As should not match an unrelated type")
	}
}
