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

package charconv

import (
	"errors"
	"slices"

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
)

// Convert converts src from one encoding to another and appends the
// result to dst. Byte order marks are converted like any other
// character. Under codec.Throw the returned slice holds the output
// produced before the failure.
func Convert(dst []byte, to encoding.Encoding, src []byte, from encoding.Encoding, policy codec.ErrorPolicy) ([]byte, error) {
	c, err := NewConverter(from, to, WithErrorPolicy(policy))
	if err != nil {
		return dst, err
	}
	dst = slices.Grow(dst, estimateSize(len(src), from, to))
	for {
		nSrc, nDst, err := c.Convert(dst[len(dst):cap(dst)], src, true)
		dst = dst[:len(dst)+nDst]
		src = src[nSrc:]
		if !errors.Is(err, transform.ErrShortDst) {
			return dst, err
		}
		dst = slices.Grow(dst, max(len(src), maxCharSize))
	}
}

// ConvertString is Convert for strings.
func ConvertString(s string, from, to encoding.Encoding, policy codec.ErrorPolicy) (string, error) {
	out, err := Convert(nil, to, []byte(s), from, policy)
	return string(out), err
}

// EncodedSize returns the exact number of bytes Convert would produce for
// src. Under codec.Throw it returns the size of the output before the
// first failure together with the error.
func EncodedSize(src []byte, from, to encoding.Encoding, policy codec.ErrorPolicy) (int, error) {
	dec, err := codec.NewDecoder(from, policy)
	if err != nil {
		return 0, err
	}
	enc, err := codec.NewEncoder(to, policy)
	if err != nil {
		return 0, err
	}

	var (
		stage    [DefaultStageSize]rune
		scratch  []byte
		size     int
		consumed int
	)
	for len(src) > 0 {
		nSrc, nDst, derr := dec.Decode(stage[:], src, true)
		runes := stage[:nDst]
		n := enc.RequiredByteCount(runes)
		if policy == codec.Throw {
			// the count stops at a character the encoder rejects
			scratch = slices.Grow(scratch[:0], n)
			if k, m, eerr := enc.Encode(scratch[:n], runes); eerr != nil {
				// the k code points before it span this many source bytes
				var skip int
				if k > 0 {
					skip, _, _ = dec.Decode(stage[:k], src, true)
				}
				return size + m, sessionError(eerr, consumed+skip, size+m)
			}
		}
		size += n
		if derr != nil && !errors.Is(derr, transform.ErrShortDst) {
			var cerr *codec.ConversionError
			if errors.As(derr, &cerr) {
				return size, sessionError(derr, consumed+cerr.Offset, size)
			}
			return size, derr
		}
		src = src[nSrc:]
		consumed += nSrc
	}
	return size, nil
}

// sessionError rewrites a *codec.ConversionError so that it reports the
// source byte offset and output size of the whole conversion, as
// Converter does.
func sessionError(err error, offset, written int) error {
	var cerr *codec.ConversionError
	if errors.As(err, &cerr) {
		e := *cerr
		e.Offset = offset
		e.Written = written
		return &e
	}
	return err
}

// Validate reports whether src is validly encoded in enc. Content ends at
// the first NUL character, which makes C style terminated buffers valid.
func Validate(src []byte, enc encoding.Encoding) (bool, error) {
	return codec.CheckEncoding(src, enc)
}

func estimateSize(n int, from, to encoding.Encoding) int {
	unit := max(from.Info().UnitSize, 1)
	return n/unit*to.Info().MaxRuneSize + maxCharSize
}
