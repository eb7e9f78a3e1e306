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
	"vitess.io/charconv/go/charconv/encoding"
)

// codePageCodec is the single byte family, driven by a range table.
type codePageCodec struct {
	cp   *encoding.CodePage
	repl rune
}

func newCodePageCodec(cp *encoding.CodePage) *codePageCodec {
	c := &codePageCodec{cp: cp, repl: '?'}
	if _, ok := cp.Encode(RuneError); ok {
		c.repl = RuneError
	}
	return c
}

func (c *codePageCodec) decodeOne(src []byte) (rune, int, status) {
	if r, ok := c.cp.Decode(src[0]); ok {
		return r, 1, statusOK
	}
	return 0, 1, statusInvalid
}

func (c *codePageCodec) encodeRune(dst []byte, r rune) int {
	b, ok := c.cp.Encode(r)
	if !ok {
		return -1
	}
	dst[0] = b
	return 1
}

func (c *codePageCodec) runeLen(r rune) int {
	if _, ok := c.cp.Encode(r); !ok {
		return -1
	}
	return 1
}

func (c *codePageCodec) replacement() rune {
	return c.repl
}
