/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package vterrors provides errors that carry a Code and a State.
//
// Codes classify errors coarsely (bad input, missing feature, ...) and
// are what callers such as the HTTP server map to a status. States are
// finer grained and describe what went wrong inside the engine. Both
// survive wrapping: ErrCode and ErrState walk the error chain with errors.As.
package vterrors

import (
	"errors"
	"fmt"
)

// Code is the coarse classification of an error.
type Code int

// Error codes.
const (
	OK Code = iota
	Unknown
	InvalidArgument
	FailedPrecondition
	ResourceExhausted
	Unimplemented
	Internal
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case FailedPrecondition:
		return "FAILED_PRECONDITION"
	case ResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case Unimplemented:
		return "UNIMPLEMENTED"
	case Internal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

type vtError struct {
	code  Code
	state State
	msg   string
	cause error
}

func (e *vtError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *vtError) Unwrap() error {
	return e.cause
}

func (e *vtError) ErrorCode() Code {
	return e.code
}

func (e *vtError) ErrorState() State {
	return e.state
}

// New returns an error with the supplied message and code.
func New(code Code, message string) error {
	return &vtError{code: code, msg: message}
}

// Errorf formats according to a format specifier and returns the string
// as a value that satisfies error, with the given code.
func Errorf(code Code, format string, args ...any) error {
	return &vtError{code: code, msg: fmt.Sprintf(format, args...)}
}

// NewErrorf formats according to a format specifier and returns the string
// as a value that satisfies error, with the given code and state.
func NewErrorf(code Code, state State, format string, args ...any) error {
	return &vtError{code: code, state: state, msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error annotating err with message. The code and state
// of err are preserved. If err is nil, Wrap returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &vtError{code: ErrCode(err), state: ErrState(err), msg: message, cause: err}
}

// Wrapf returns an error annotating err with the format specifier.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ErrCode returns the error code if it's a vtError or anything else in the
// chain that implements ErrorWithCode. If err is nil, it returns OK.
func ErrCode(err error) Code {
	if err == nil {
		return OK
	}
	var withCode ErrorWithCode
	if errors.As(err, &withCode) {
		return withCode.ErrorCode()
	}
	return Unknown
}

// ErrState returns the error state of the first error in the chain that
// carries one, or Undefined.
func ErrState(err error) State {
	if err == nil {
		return Undefined
	}
	var withState ErrorWithState
	if errors.As(err, &withState) {
		return withState.ErrorState()
	}
	return Undefined
}
