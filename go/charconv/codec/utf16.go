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
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	lowSurrMin   = 0xDC00
)

// utf16Codec is the UTF-16 family for one byte order.
type utf16Codec struct {
	order binary.ByteOrder
}

func (c utf16Codec) decodeOne(src []byte) (rune, int, status) {
	if len(src) < 2 {
		return 0, 0, statusShort
	}
	u := rune(c.order.Uint16(src))
	switch {
	case u < surrogateMin || u > surrogateMax:
		return u, 2, statusOK
	case u >= lowSurrMin:
		// unpaired low surrogate
		return 0, 2, statusInvalid
	}
	if len(src) < 4 {
		return 0, 0, statusShort
	}
	u2 := rune(c.order.Uint16(src[2:]))
	if u2 < lowSurrMin || u2 > surrogateMax {
		// high surrogate not followed by a low one
		return 0, 2, statusInvalid
	}
	return utf16.DecodeRune(u, u2), 4, statusOK
}

func (c utf16Codec) encodeRune(dst []byte, r rune) int {
	switch c.runeLen(r) {
	case 2:
		c.order.PutUint16(dst, uint16(r))
		return 2
	case 4:
		r1, r2 := utf16.EncodeRune(r)
		c.order.PutUint16(dst, uint16(r1))
		c.order.PutUint16(dst[2:], uint16(r2))
		return 4
	default:
		return -1
	}
}

func (utf16Codec) runeLen(r rune) int {
	if !utf8.ValidRune(r) {
		return -1
	}
	return 2 * utf16.RuneLen(r)
}

func (utf16Codec) replacement() rune {
	return RuneError
}
