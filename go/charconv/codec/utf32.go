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
	"unicode/utf8"
)

// utf32Codec is the UTF-32 family for one byte order.
type utf32Codec struct {
	order binary.ByteOrder
}

func (c utf32Codec) decodeOne(src []byte) (rune, int, status) {
	if len(src) < 4 {
		return 0, 0, statusShort
	}
	u := c.order.Uint32(src)
	if u > utf8.MaxRune || (surrogateMin <= u && u <= surrogateMax) {
		return 0, 4, statusInvalid
	}
	return rune(u), 4, statusOK
}

func (c utf32Codec) encodeRune(dst []byte, r rune) int {
	if !utf8.ValidRune(r) {
		return -1
	}
	c.order.PutUint32(dst, uint32(r))
	return 4
}

func (utf32Codec) runeLen(r rune) int {
	if !utf8.ValidRune(r) {
		return -1
	}
	return 4
}

func (utf32Codec) replacement() rune {
	return RuneError
}
