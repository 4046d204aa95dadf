package invoker

import (
	"fmt"
	"strconv"

	"github.com/rise-and-shine/invoker/codemap"
)

const (
	CodeInvalidArgs      = "INVALID_INVOCATION_ARGS"
	CodeInvocationFailed = "INVOCATION_FAILED"
)

// InvocationFailure is returned by Invoke when a command cannot be resolved to a callable.
// It carries the command and the normalized arguments of the failed invocation.
type InvocationFailure struct {
	Message string
	Code    *int
	Cause   error
	Command codemap.Code
	Args    []any
}

// NewInvocationFailure is the default InvocationFailureFactory.
func NewInvocationFailure(message string, code *int, cause error, command codemap.Code, args []any) error {
	return &InvocationFailure{
		Message: message,
		Code:    code,
		Cause:   cause,
		Command: command,
		Args:    args,
	}
}

func (e *InvocationFailure) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invocation failed"
	}
	if e.Code != nil {
		msg += " (code " + strconv.Itoa(*e.Code) + ")"
	}

	msg = fmt.Sprintf("%s: command %q", msg, string(e.Command))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InvocationFailure) Unwrap() error {
	return e.Cause
}

// InvalidInput is returned when invocation arguments cannot be normalized into a list.
type InvalidInput struct {
	Message string
	Cause   error
	Value   any
}

// NewInvalidInput is the default InvalidInputFactory.
func NewInvalidInput(message string, cause error, value any) error {
	return &InvalidInput{
		Message: message,
		Cause:   cause,
		Value:   value,
	}
}

func (e *InvalidInput) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid input"
	}

	msg = fmt.Sprintf("%s: got %T", msg, e.Value)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InvalidInput) Unwrap() error {
	return e.Cause
}
