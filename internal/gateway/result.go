package gateway

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

// ErrorType is the severity a caller should use when presenting a failed Result.
type ErrorType string

const (
	TypeError   ErrorType = "error"
	TypeWarning ErrorType = "warning"
	TypeInfo    ErrorType = "info"
)

// Result is the uniform outcome of every gateway operation. When Error is
// false, Data holds the payload; when it is true, Message is never empty.
type Result[T any] struct {
	Error   bool      `json:"error"`
	Data    T         `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Type    ErrorType `json:"type,omitempty"`
}

// ResultError is the Go error form of a failed Result.
type ResultError struct {
	Message string
	Type    ErrorType
}

func (e *ResultError) Error() string {
	return e.Message
}

// Err returns nil for a successful result and a *ResultError otherwise.
func (r Result[T]) Err() error {
	if !r.Error {
		return nil
	}
	return &ResultError{Message: r.Message, Type: r.Type}
}

func Success[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func failure[T any](message string) Result[T] {
	return Result[T]{Error: true, Message: message}
}

func categorizedFailure[T any](status int, message string) Result[T] {
	return Result[T]{Error: true, Message: message, Type: CategorizeAPIError(status, message)}
}

func mapResult[A, B any](r Result[A], f func(A) B) Result[B] {
	if r.Error {
		return Result[B]{Error: true, Message: r.Message, Type: r.Type}
	}
	return Success(f(r.Data))
}

// CategorizeAPIError derives a severity from the HTTP status and the backend's
// message.
func CategorizeAPIError(status int, message string) ErrorType {
	if status >= 400 && status < 500 {
		switch {
		case status == http.StatusUnauthorized, status == http.StatusForbidden:
			return TypeWarning
		case status == http.StatusNotFound:
			return TypeInfo
		case status == http.StatusConflict,
			strings.Contains(message, "already exists"),
			strings.Contains(message, "unique"),
			strings.Contains(message, "constraint"):
			return TypeWarning
		}
		return TypeError
	}

	return TypeError
}

// NormalizeResponse translates a raw backend body and HTTP status into a
// Result. It has no side effects.
func NormalizeResponse[T any](raw []byte, status int) Result[T] {
	var envelope models.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return categorizedFailure[T](status, describeBody(raw, status))
	}

	if envelope.Status != models.StatusSuccess {
		message := envelope.Message
		if message == "" {
			message = describeStatus(status)
		}
		return categorizedFailure[T](status, message)
	}

	var data T
	payload := bytes.TrimSpace(envelope.Data)
	if len(payload) > 0 && !bytes.Equal(payload, []byte("null")) {
		if err := json.Unmarshal(payload, &data); err != nil {
			return categorizedFailure[T](status, fmt.Sprintf("unexpected response payload from server: %v", err))
		}
	}

	return Success(data)
}

func describeStatus(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("request failed with status %d %s", status, text)
	}
	return fmt.Sprintf("request failed with status %d", status)
}
