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

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/encoding"
)

// RuneError is the code point substituted for invalid input under Replace.
const RuneError = utf8.RuneError

// Decoder converts bytes in one encoding into code points.
//
// A Decoder holds no state besides its encoding and policy and may be
// used from several goroutines at once.
type Decoder interface {
	Encoding() encoding.Encoding
	ErrorPolicy() ErrorPolicy

	// Decode decodes src into dst and returns the number of bytes consumed
	// and code points written.
	//
	// It returns transform.ErrShortDst when dst is full before src is
	// exhausted. When final is false and src ends with an incomplete
	// character, those bytes are left unconsumed and Decode returns
	// transform.ErrShortSrc. When final is true an incomplete trailing
	// character is invalid input. Invalid input is handled according to
	// the policy; under Throw the error is a *ConversionError and the
	// counts describe the valid prefix.
	Decode(dst []rune, src []byte, final bool) (nSrc, nDst int, err error)

	// CountValid returns the number of code points and bytes of the longest
	// valid prefix of src. Counting stops before the first NUL code point.
	CountValid(src []byte) (codepoints, validBytes int)

	// Resync returns how many leading bytes of next continue an invalid
	// sequence that the input decoded so far ends inside. tail holds the
	// last bytes of that input, at least TailSize of them when there are
	// that many, and must not end inside an incomplete character. Decode
	// reports an invalid sequence once, where it starts, so a caller that
	// splits input into chunks drops these bytes instead of decoding them.
	Resync(tail, next []byte) int
}

// TailSize is the number of already decoded bytes Resync needs to see.
const TailSize = utf8.UTFMax

type status int

const (
	statusOK status = iota
	// statusInvalid means the first size bytes cannot start a character.
	statusInvalid
	// statusShort means src holds an incomplete but so far valid character.
	statusShort
)

// unitDecoder decodes a single character from the front of src, which
// is never empty.
type unitDecoder interface {
	decodeOne(src []byte) (r rune, size int, st status)
}

// resyncer is implemented by unit decoders whose invalid sequences run
// on until the next byte that can start a character.
type resyncer interface {
	// openInvalid reports whether input ending in tail stops inside an
	// invalid sequence.
	openInvalid(tail []byte) bool
	// continuation returns the length of the prefix of src that would
	// extend an invalid sequence.
	continuation(src []byte) int
}

type decoder struct {
	enc    encoding.Encoding
	policy ErrorPolicy
	unit   unitDecoder
}

var _ Decoder = (*decoder)(nil)

func (d *decoder) Encoding() encoding.Encoding {
	return d.enc
}

func (d *decoder) ErrorPolicy() ErrorPolicy {
	return d.policy
}

func (d *decoder) Decode(dst []rune, src []byte, final bool) (nSrc, nDst int, err error) {
	for nSrc < len(src) {
		if nDst >= len(dst) {
			return nSrc, nDst, transform.ErrShortDst
		}

		r, size, st := d.unit.decodeOne(src[nSrc:])
		switch st {
		case statusShort:
			if !final {
				return nSrc, nDst, transform.ErrShortSrc
			}
			// a truncated character at the end of the stream is a
			// single invalid subsequence
			size = len(src) - nSrc
			fallthrough
		case statusInvalid:
			switch d.policy {
			case Skip:
				nSrc += size
				continue
			case Replace:
				r = RuneError
			default:
				return nSrc, nDst, malformed(d.enc, nSrc, nDst, src[nSrc:nSrc+size])
			}
		}

		dst[nDst] = r
		nDst++
		nSrc += size
	}
	return nSrc, nDst, nil
}

func (d *decoder) Resync(tail, next []byte) int {
	r, ok := d.unit.(resyncer)
	if !ok || len(next) == 0 || !r.openInvalid(tail) {
		return 0
	}
	return r.continuation(next)
}

func (d *decoder) CountValid(src []byte) (codepoints, validBytes int) {
	return countValid(d.unit, src)
}

func countValid(unit unitDecoder, src []byte) (codepoints, validBytes int) {
	for validBytes < len(src) {
		r, size, st := unit.decodeOne(src[validBytes:])
		if st != statusOK || r == 0 {
			break
		}
		codepoints++
		validBytes += size
	}
	return codepoints, validBytes
}
