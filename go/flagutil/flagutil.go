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

// Package flagutil contains helpers for registering pflag flags and
// flag values that parse string lists and enumerations.
package flagutil

import (
	"strings"

	"github.com/spf13/pflag"
)

// StringListValue is a []string flag holding a comma separated list.
// Space around elements is trimmed and empty elements are dropped, so
// "a, b,," is [a b]. A backslash escapes the next character, which lets
// an element contain a comma.
type StringListValue []string

// Get returns the []string value of this flag.
func (value StringListValue) Get() any {
	return []string(value)
}

// splitList splits v at unescaped commas.
func splitList(v string) []string {
	var (
		out     []string
		elem    strings.Builder
		escaped bool
	)
	flush := func() {
		if e := strings.TrimSpace(elem.String()); e != "" {
			out = append(out, e)
		}
		elem.Reset()
	}
	for _, r := range v {
		switch {
		case escaped:
			elem.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			flush()
		default:
			elem.WriteRune(r)
		}
	}
	flush()
	return out
}

// Set replaces the list with the elements parsed from v.
func (value *StringListValue) Set(v string) error {
	*value = splitList(v)
	return nil
}

// String joins the elements back into a list Set accepts.
func (value StringListValue) String() string {
	var b strings.Builder
	for i, e := range value {
		if i > 0 {
			b.WriteByte(',')
		}
		for _, r := range e {
			if r == ',' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (value StringListValue) Type() string { return "strings" }

// StringListVar defines a StringListValue flag stored in p.
func StringListVar(fs *pflag.FlagSet, p *[]string, name string, defaultValue []string, usage string) {
	*p = defaultValue
	fs.Var((*StringListValue)(p), name, usage)
}
