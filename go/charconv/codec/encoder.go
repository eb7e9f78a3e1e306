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
	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/encoding"
)

// Encoder converts code points into bytes of one encoding.
//
// Like Decoder, an Encoder is safe for concurrent use.
type Encoder interface {
	Encoding() encoding.Encoding
	ErrorPolicy() ErrorPolicy

	// Encode encodes src into dst and returns the number of code points
	// consumed and bytes written. It never writes a partial character:
	// when the next character does not fit, Encode stops and returns
	// transform.ErrShortDst. Code points that cannot be represented are
	// handled according to the policy; under Throw the error is a
	// *ConversionError. Under Replace, a table that cannot represent the
	// replacement character either drops the code point as Skip would.
	Encode(dst []byte, src []rune) (nSrc, nDst int, err error)

	// RequiredByteCount returns the exact number of bytes Encode would
	// write for src given unlimited space. Under Throw the count stops at
	// the first code point that cannot be represented.
	RequiredByteCount(src []rune) int
}

// unitEncoder encodes single code points. encodeRune returns -1 and
// writes nothing when r cannot be represented. runeLen returns the size
// encodeRune would write, or -1.
type unitEncoder interface {
	encodeRune(dst []byte, r rune) int
	runeLen(r rune) int
	replacement() rune
}

type encoder struct {
	enc    encoding.Encoding
	policy ErrorPolicy
	unit   unitEncoder
}

var _ Encoder = (*encoder)(nil)

func (e *encoder) Encoding() encoding.Encoding {
	return e.enc
}

func (e *encoder) ErrorPolicy() ErrorPolicy {
	return e.policy
}

func (e *encoder) Encode(dst []byte, src []rune) (nSrc, nDst int, err error) {
	for ; nSrc < len(src); nSrc++ {
		r := src[nSrc]
		size := e.unit.runeLen(r)
		if size < 0 {
			switch e.policy {
			case Skip:
				continue
			case Replace:
				r = e.unit.replacement()
				if size = e.unit.runeLen(r); size < 0 {
					continue
				}
			default:
				return nSrc, nDst, unrepresentable(e.enc, nSrc, nDst, r)
			}
		}
		if nDst+size > len(dst) {
			return nSrc, nDst, transform.ErrShortDst
		}
		nDst += e.unit.encodeRune(dst[nDst:], r)
	}
	return nSrc, nDst, nil
}

func (e *encoder) RequiredByteCount(src []rune) int {
	var total int
	for _, r := range src {
		size := e.unit.runeLen(r)
		if size < 0 {
			switch e.policy {
			case Skip:
				continue
			case Replace:
				if size = e.unit.runeLen(e.unit.replacement()); size < 0 {
					continue
				}
			default:
				return total
			}
		}
		total += size
	}
	return total
}
