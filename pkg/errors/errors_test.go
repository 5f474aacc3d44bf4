package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeWordSyntax, "bad syntax in %s", "a*")

	if err.Code != ErrCodeWordSyntax {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeWordSyntax)
	}

	if err.Message != "bad syntax in a*" {
		t.Errorf("Message = %v, want %v", err.Message, "bad syntax in a*")
	}

	expected := "WORD_SYNTAX: bad syntax in a*"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode presentation")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
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
			err:      New(ErrCodeSizeLimit, "table limit reached"),
			code:     ErrCodeSizeLimit,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSizeLimit, "table limit reached"),
			code:     ErrCodeChoiceLimit,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidPresentation, New(ErrCodeWordSyntax, "inner"), "outer"),
			code:     ErrCodeInvalidPresentation,
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
			err:      New(ErrCodeChoiceLimit, "too many choices made"),
			expected: ErrCodeChoiceLimit,
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
			err:      New(ErrCodeWordSyntax, "unmatched parenthesis"),
			expected: "unmatched parenthesis",
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

func TestIsLimit(t *testing.T) {
	if !IsLimit(New(ErrCodeSizeLimit, "x")) {
		t.Error("IsLimit(SIZE_LIMIT) = false, want true")
	}
	if !IsLimit(Wrap(ErrCodeChoiceLimit, nil, "x")) {
		t.Error("IsLimit(CHOICE_LIMIT) = false, want true")
	}
	if IsLimit(New(ErrCodeWordSyntax, "x")) {
		t.Error("IsLimit(WORD_SYNTAX) = true, want false")
	}
	if IsLimit(nil) {
		t.Error("IsLimit(nil) = true, want false")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeWordSyntax, http.StatusBadRequest},
		{ErrCodeInvalidAlphabet, http.StatusBadRequest},
		{ErrCodeSizeLimit, http.StatusUnprocessableEntity},
		{ErrCodeChoiceLimit, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
