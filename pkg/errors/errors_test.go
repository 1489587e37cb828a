package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEmptySelection, "nothing selected in %s", "Main")

	if err.Code != ErrCodeEmptySelection {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEmptySelection)
	}

	if err.Message != "nothing selected in Main" {
		t.Errorf("Message = %v, want %v", err.Message, "nothing selected in Main")
	}

	expected := "EMPTY_SELECTION: nothing selected in Main"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("layer vanished")
	err := Wrap(ErrCodeHost, cause, "duplicate failed")

	if err.Code != ErrCodeHost {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeHost)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

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
			err:      New(ErrCodeNoActiveContext, "test"),
			code:     ErrCodeNoActiveContext,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoActiveContext, "test"),
			code:     ErrCodeEmptySelection,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeHost, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeHost,
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
			err:      New(ErrCodeNotAPrecomposition, "test"),
			expected: ErrCodeNotAPrecomposition,
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

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "host error includes cause",
			err:      Wrap(ErrCodeHost, errors.New("layer locked"), "remove precomposition"),
			expected: "remove precomposition: layer locked",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"skip warning", New(ErrCodeNotAPrecomposition, "solid"), false},
		{"no context", New(ErrCodeNoActiveContext, "none"), true},
		{"empty selection", New(ErrCodeEmptySelection, "none"), true},
		{"host", Wrap(ErrCodeHost, errors.New("boom"), "dup"), true},
		{"plain", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeNoActiveContext,
		ErrCodeEmptySelection,
		ErrCodeNotAPrecomposition,
		ErrCodeHost,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidProject,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeSnapshotNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
