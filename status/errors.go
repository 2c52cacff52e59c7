package status

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed - в ответе есть поле с недопустимым значением.
	ErrMalformed = errors.New("malformed response")
	// ErrIncomplete - ответ пустой или обрезан.
	ErrIncomplete = errors.New("incomplete response")
	// ErrZeroCapacity - принтер сообщил нулевой объем доступной памяти,
	// процент использования не определен. Является частным случаем ErrMalformed.
	ErrZeroCapacity = fmt.Errorf("%w: max available memory is zero", ErrMalformed)
)

// ParseError описывает ответ, который не удалось разобрать.
// Raw содержит ответ в исходном виде.
type ParseError struct {
	Kind   error
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("status: %v: %q", e.Kind, e.Raw)
	}
	return fmt.Sprintf("status: %v: %s: %q", e.Kind, e.Reason, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func malformed(raw, format string, args ...any) *ParseError {
	return &ParseError{Kind: ErrMalformed, Raw: raw, Reason: fmt.Sprintf(format, args...)}
}

func incomplete(raw, format string, args ...any) *ParseError {
	return &ParseError{Kind: ErrIncomplete, Raw: raw, Reason: fmt.Sprintf(format, args...)}
}
