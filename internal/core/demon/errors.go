package demon

import (
	"errors"
	"strings"
)

// Error codes reported to API clients alongside validation failures.
const (
	CodeInvalidName        = 42211
	CodeInvalidRequirement = 42212
	CodeInvalidPosition    = 42213
	CodeMalformedVideo     = 42222
)

var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrInvalidVideoURL    = errors.New("invalid video url")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidRequirement = errors.New("invalid requirement")
)

// ValidationError reports input rejected before any mutation took place.
// It matches its sentinel (ErrPositionOutOfRange, ...) through errors.Is.
type ValidationError struct {
	Code    int
	Field   string
	Message string
	Data    map[string]any
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidVideo wraps a validator failure for the given field.
func InvalidVideo(field string, cause error) *ValidationError {
	msg := "malformed video url"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &ValidationError{
		Code:    CodeMalformedVideo,
		Field:   field,
		Message: msg,
		Err:     errors.Join(ErrInvalidVideoURL, cause),
	}
}

// ValidateName trims a demon name and rejects empty ones.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &ValidationError{
			Code:    CodeInvalidName,
			Field:   "name",
			Message: "demon name must not be empty",
			Err:     ErrInvalidName,
		}
	}
	return trimmed, nil
}

// ValidateRequirement converts a CanSetRequirement refusal into a ValidationError.
func ValidateRequirement(requirement int) error {
	if result := CanSetRequirement(requirement); !result.Allowed {
		return &ValidationError{
			Code:    CodeInvalidRequirement,
			Field:   "requirement",
			Message: result.Reason,
			Err:     ErrInvalidRequirement,
		}
	}
	return nil
}
