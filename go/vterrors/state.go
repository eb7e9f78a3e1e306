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

package vterrors

// State is error state
type State int

// All the error states
const (
	Undefined State = iota

	// invalid argument
	MalformedInput
	UnrepresentableCharacter
	UnknownEncodingName
	InvalidErrorPolicy

	// failed precondition
	ConverterFailed

	// resource exhausted
	ShortDestination

	// unimplemented
	UnsupportedEncoding

	// No state should be added below NumOfStates
	NumOfStates
)

var stateNames = [NumOfStates]string{
	Undefined:                "Undefined",
	MalformedInput:           "MalformedInput",
	UnrepresentableCharacter: "UnrepresentableCharacter",
	UnknownEncodingName:      "UnknownEncodingName",
	InvalidErrorPolicy:       "InvalidErrorPolicy",
	ConverterFailed:          "ConverterFailed",
	ShortDestination:         "ShortDestination",
	UnsupportedEncoding:      "UnsupportedEncoding",
}

func (s State) String() string {
	if s < 0 || s >= NumOfStates {
		return "Undefined"
	}
	return stateNames[s]
}

// ErrorWithState is used to return the error State is such can be found
type ErrorWithState interface {
	ErrorState() State
}

// ErrorWithCode returns the error code
type ErrorWithCode interface {
	ErrorCode() Code
}
