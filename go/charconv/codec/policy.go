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

package codec

import (
	"strings"

	"vitess.io/charconv/go/vterrors"
)

// ErrorPolicy selects what a Decoder or Encoder does with input it cannot
// convert.
type ErrorPolicy int

const (
	// Throw stops at the first invalid unit and returns a *ConversionError.
	Throw ErrorPolicy = iota
	// Skip drops invalid input and continues.
	Skip
	// Replace substitutes one replacement character per invalid
	// subsequence and continues.
	Replace
)

var policyNames = [...]string{
	Throw:   "THROW",
	Skip:    "SKIP",
	Replace: "REPLACE",
}

func (p ErrorPolicy) String() string {
	if !p.Valid() {
		return "INVALID"
	}
	return policyNames[p]
}

// Valid reports whether p is one of the defined policies.
func (p ErrorPolicy) Valid() bool {
	return p >= Throw && p <= Replace
}

// PolicyNames returns the names accepted by ParsePolicy.
func PolicyNames() []string {
	return append([]string(nil), policyNames[:]...)
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(name string) (ErrorPolicy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ErrorPolicy(p), nil
		}
	}
	return Throw, vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.InvalidErrorPolicy,
		"invalid error policy %q, expected one of %s", name, strings.Join(policyNames[:], ", "))
}

func checkPolicy(p ErrorPolicy) error {
	if !p.Valid() {
		return vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.InvalidErrorPolicy, "invalid error policy %d", int(p))
	}
	return nil
}
