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
	"fmt"
	"strings"

	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/vterrors"
)

// ConversionError is returned by decoders, encoders and converters that
// use the Throw policy. Output produced before the failure is valid.
type ConversionError struct {
	// State is vterrors.MalformedInput for decoding failures and
	// vterrors.UnrepresentableCharacter for encoding failures.
	State    vterrors.State
	Encoding encoding.Encoding
	// Offset is the position of the first invalid unit: a byte offset for
	// malformed input, a code point index for unrepresentable characters.
	// Everything before Offset was converted successfully.
	Offset int
	// Written is the number of output units produced before the failure:
	// code points for a decoder, bytes for an encoder or converter.
	Written int
	// Bad holds the invalid byte subsequence for malformed input.
	Bad []byte
	// Rune is the code point that could not be encoded.
	Rune rune
}

func (e *ConversionError) Error() string {
	if e.State == vterrors.UnrepresentableCharacter {
		return fmt.Sprintf("code point U+%04X at index %d cannot be encoded in %s", e.Rune, e.Offset, e.Encoding)
	}
	var hex strings.Builder
	for i, b := range e.Bad {
		if i > 0 {
			hex.WriteByte(' ')
		}
		fmt.Fprintf(&hex, "%02X", b)
	}
	return fmt.Sprintf("malformed %s input at byte offset %d: [%s]", e.Encoding, e.Offset, hex.String())
}

// ErrorCode implements vterrors.ErrorWithCode.
func (e *ConversionError) ErrorCode() vterrors.Code {
	return vterrors.InvalidArgument
}

// ErrorState implements vterrors.ErrorWithState.
func (e *ConversionError) ErrorState() vterrors.State {
	return e.State
}

func malformed(enc encoding.Encoding, offset, written int, bad []byte) *ConversionError {
	return &ConversionError{
		State:    vterrors.MalformedInput,
		Encoding: enc,
		Offset:   offset,
		Written:  written,
		Bad:      append([]byte(nil), bad...),
	}
}

func unrepresentable(enc encoding.Encoding, offset, written int, r rune) *ConversionError {
	return &ConversionError{
		State:    vterrors.UnrepresentableCharacter,
		Encoding: enc,
		Offset:   offset,
		Written:  written,
		Rune:     r,
	}
}

func unsupported(enc encoding.Encoding) error {
	return vterrors.NewErrorf(vterrors.Unimplemented, vterrors.UnsupportedEncoding, "no codec for encoding %s", enc)
}
