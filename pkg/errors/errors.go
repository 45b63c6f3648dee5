// Package errors provides coded errors shared by the engine, the CLI and the
// HTTP API.
//
// A [Code] says who is at fault. Usage codes (INVALID_*, FILE_NOT_FOUND,
// UNSUPPORTED) blame the input or the configuration: the CLI exits with 2
// and the server answers 4xx. Everything else is a failure of strata
// itself.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown vertex: %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // ...
//	}
//
// Package sentinels are wrapped so that both the code and the sentinel
// match:
//
//	err := errors.Wrap(errors.ErrCodeUnsupported, ErrUnsupported, "combine %s", c)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. It is written verbatim into HTTP
// error bodies.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeUnsupported   Code = "UNSUPPORTED"

	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Usage reports whether the code blames the caller's input or
// configuration.
func (c Code) Usage() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidFormat,
		ErrCodeFileNotFound, ErrCodeUnsupported:
		return true
	}
	return false
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with a formatted message and a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for people: the messages along the chain without
// codes, joined by ": ".
//
//	UserMessage(Wrap(ErrCodeInvalidFormat, io.ErrUnexpectedEOF, "parse graph"))
//	// parse graph: unexpected EOF
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	return msg
}
