package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so callers can map them to a
// transport status without string matching.
type ErrorKind string

const (
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindAuthorization  ErrorKind = "authorization"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindConflict       ErrorKind = "conflict"
	ErrorKindTerminalState  ErrorKind = "terminal_state"
	ErrorKindVerification   ErrorKind = "verification"
	ErrorKindFraudBlock     ErrorKind = "fraud_block"
	ErrorKindInternal       ErrorKind = "internal"
)

type PipelineError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Detail, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func NewError(kind ErrorKind, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func WrapError(kind ErrorKind, cause error, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the classification of err, or ErrorKindInternal for
// anything that did not originate in the pipeline.
func KindOf(err error) ErrorKind {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ErrorKindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
