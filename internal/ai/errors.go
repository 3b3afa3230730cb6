package ai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies enhancement failures so callers can decide whether
// to retry, surface a config problem, or degrade silently.
type ErrorKind string

const (
	// ErrKindAuth means the API key was rejected.
	ErrKindAuth ErrorKind = "auth"
	// ErrKindPermission means the key lacks access to the model.
	ErrKindPermission ErrorKind = "permission"
	// ErrKindRateLimited means retries were exhausted while rate limited.
	ErrKindRateLimited ErrorKind = "rate_limited"
	// ErrKindServer means the API kept returning 5xx responses.
	ErrKindServer ErrorKind = "server"
	// ErrKindNetwork means the request never completed.
	ErrKindNetwork ErrorKind = "network"
	// ErrKindParse means the model reply was not usable JSON even after
	// repair.
	ErrKindParse ErrorKind = "parse"
)

// Error is an enhancement failure with its classification and, when
// available, the HTTP status that produced it.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai: %s (%s, status %d)", e.Message, e.Kind, e.Status)
	}
	return fmt.Sprintf("ai: %s (%s)", e.Message, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or empty when err is not an
// enhancement error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
