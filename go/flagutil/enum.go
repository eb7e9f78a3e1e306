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

package flagutil

import (
	"fmt"
	"strings"
)

// StringEnum is a string flag restricted to a fixed set of choices.
// Matching is case-insensitive; the stored value is the choice as it was
// declared.
type StringEnum struct {
	name    string
	val     string
	choices []string
}

// NewStringEnum returns a StringEnum for the named flag. The initial value
// must be one of the choices.
func NewStringEnum(name string, initialValue string, choices []string) *StringEnum {
	return &StringEnum{
		name:    name,
		val:     initialValue,
		choices: choices,
	}
}

// Set is part of the pflag.Value interface.
func (s *StringEnum) Set(arg string) error {
	for _, c := range s.choices {
		if strings.EqualFold(c, arg) {
			s.val = c
			return nil
		}
	}
	return fmt.Errorf("invalid choice for %s: %q (valid choices: %s)", s.name, arg, strings.Join(s.choices, ", "))
}

// String is part of the pflag.Value interface.
func (s *StringEnum) String() string { return s.val }

// Type is part of the pflag.Value interface.
func (s *StringEnum) Type() string { return "string" }
