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

// Package detect guesses the encoding of a byte stream from its first
// few bytes.
package detect

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/log"
)

// PeekSize is the number of leading bytes Detect looks at.
const PeekSize = 4

// Result is the outcome of a detection.
type Result struct {
	Encoding encoding.Encoding
	// BOMLength is the length of the byte order mark, where the content
	// starts. It is zero when no BOM was found.
	BOMLength int
}

var boms = []struct {
	bom []byte
	enc encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, encoding.UTF8},
	// UTF-32LE must come before UTF-16LE, which shares its first two bytes.
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, encoding.UTF32LE},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, encoding.UTF32BE},
	{[]byte{0xFE, 0xFF}, encoding.UTF16BE},
	{[]byte{0xFF, 0xFE}, encoding.UTF16LE},
}

// BOM returns the byte order mark of enc, or nil if it has none.
func BOM(enc encoding.Encoding) []byte {
	for _, b := range boms {
		if b.enc == enc {
			return bytes.Clone(b.bom)
		}
	}
	return nil
}

// Detect returns the encoding of p. A byte order mark wins. Without one,
// NUL bytes in the first code unit positions point at UTF-16 or UTF-32,
// and a prefix without NUL bytes is UTF-8 if its first character is well
// formed. Anything else, including an empty p, is encoding.Unknown.
func Detect(p []byte) Result {
	for _, b := range boms {
		if bytes.HasPrefix(p, b.bom) {
			return Result{Encoding: b.enc, BOMLength: len(b.bom)}
		}
	}
	return Result{Encoding: guess(p[:min(len(p), PeekSize)])}
}

func guess(p []byte) encoding.Encoding {
	n := len(p)
	if n == 0 {
		return encoding.Unknown
	}
	if n == 4 {
		switch {
		case p[0] == 0 && p[1] == 0 && p[2]|p[3] != 0:
			return encoding.UTF32BE
		case p[2] == 0 && p[3] == 0 && p[0]|p[1] != 0:
			return encoding.UTF32LE
		}
	}
	if n%2 == 0 {
		switch {
		case p[0] == 0 && p[1] != 0:
			return encoding.UTF16BE
		case p[0] != 0 && p[1] == 0:
			return encoding.UTF16LE
		}
	}
	if bytes.IndexByte(p, 0) >= 0 {
		return encoding.Unknown
	}
	if firstCharValid(p) {
		return encoding.UTF8
	}
	return encoding.Unknown
}

var utf8Decoder, _ = codec.NewDecoder(encoding.UTF8, codec.Throw)

// firstCharValid reports whether p starts with a complete, well formed
// UTF-8 character.
func firstCharValid(p []byte) bool {
	var r [1]rune
	_, n, err := utf8Decoder.Decode(r[:], p, true)
	return n == 1 && (err == nil || errors.Is(err, transform.ErrShortDst))
}

// Peek detects the encoding of r without consuming any bytes.
func Peek(r *bufio.Reader) (Result, error) {
	p, err := r.Peek(PeekSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return Result{}, err
	}
	res := Detect(p)
	log.DebugS("detected encoding", "encoding", res.Encoding.String(), "bom", res.BOMLength)
	return res, nil
}
