package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidInput, "unknown vertex: %s", "x"), "INVALID_INPUT: unknown vertex: x"},
		{"wrapped", Wrap(ErrCodeInternal, io.EOF, "read"), "INTERNAL_ERROR: read: EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsSentinel(t *testing.T) {
	err := fmt.Errorf("layout: %w", Wrap(ErrCodeUnsupported, errSentinel, "combine same-inputs"))
	if !errors.Is(err, errSentinel) {
		t.Error("sentinel lost through Wrap")
	}
	if !Is(err, ErrCodeUnsupported) {
		t.Error("code lost through fmt wrapping")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeUnsupported, false},
		{"outer code wins", Wrap(ErrCodeUnsupported, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeUnsupported, true},
		{"inner code hidden", Wrap(ErrCodeUnsupported, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, false},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("ctx: %w", New(ErrCodeInvalidConfig, "x"))); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}

func TestCodeUsage(t *testing.T) {
	usage := []Code{ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeFileNotFound, ErrCodeUnsupported}
	for _, c := range usage {
		if !c.Usage() {
			t.Errorf("%s.Usage() = false", c)
		}
	}
	for _, c := range []Code{ErrCodeNotFound, ErrCodeInternal, ""} {
		if c.Usage() {
			t.Errorf("%q.Usage() = true", c)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "vertex id cannot be empty"), "vertex id cannot be empty"},
		{"plain", errors.New("plain error"), "plain error"},
		{"cause", Wrap(ErrCodeInvalidFormat, io.ErrUnexpectedEOF, "parse graph"), "parse graph: unexpected EOF"},
		{
			"nested",
			Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidFormat, "bad port"), "link a -> b"),
			"link a -> b: bad port",
		},
		{"behind fmt", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "no such graph")), "no such graph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
