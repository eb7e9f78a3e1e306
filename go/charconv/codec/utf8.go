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
	"unicode/utf8"
)

// utf8Codec is the UTF-8 family.
type utf8Codec struct{}

var _ resyncer = utf8Codec{}

// isLeadByte reports whether b can begin a well-formed UTF-8 sequence.
func isLeadByte(b byte) bool {
	return b < utf8.RuneSelf || (0xC2 <= b && b <= 0xF4)
}

func (utf8Codec) decodeOne(src []byte) (rune, int, status) {
	if src[0] < utf8.RuneSelf {
		return rune(src[0]), 1, statusOK
	}
	if !utf8.FullRune(src) {
		return 0, 0, statusShort
	}
	r, size := utf8.DecodeRune(src)
	if r == utf8.RuneError && size == 1 {
		// resynchronize on the next byte that can start a character
		size = 1
		for size < len(src) && !isLeadByte(src[size]) {
			size++
		}
		return 0, size, statusInvalid
	}
	return r, size, statusOK
}

func (utf8Codec) openInvalid(tail []byte) bool {
	q := len(tail) - 1
	for q >= 0 && !isLeadByte(tail[q]) {
		q--
	}
	switch {
	case q == len(tail)-1:
		// empty, or ends on a character boundary
		return false
	case q < 0 || tail[q] < utf8.RuneSelf:
		return true
	}
	_, size := utf8.DecodeRune(tail[q:])
	return size == 1 || q+size < len(tail)
}

func (utf8Codec) continuation(src []byte) int {
	n := 0
	for n < len(src) && !isLeadByte(src[n]) {
		n++
	}
	return n
}

func (utf8Codec) encodeRune(dst []byte, r rune) int {
	if !utf8.ValidRune(r) {
		return -1
	}
	return utf8.EncodeRune(dst, r)
}

func (utf8Codec) runeLen(r rune) int {
	return utf8.RuneLen(r)
}

func (utf8Codec) replacement() rune {
	return RuneError
}
