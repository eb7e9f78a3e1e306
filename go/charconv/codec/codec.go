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

// Package codec implements decoders and encoders for every encoding in
// the catalog.
//
// Each encoding family (UTF-8, UTF-16, UTF-32 and single byte code pages)
// knows how to decode or encode one character. A shared driver applies the
// ErrorPolicy on top, so invalid input is treated the same way everywhere:
// Throw stops with a *ConversionError, Skip drops the invalid unit and
// Replace substitutes U+FFFD (or '?' for code pages that lack it).
package codec

import (
	"encoding/binary"

	"vitess.io/charconv/go/charconv/encoding"
)

type family interface {
	unitDecoder
	unitEncoder
}

func familyFor(enc encoding.Encoding) family {
	info := enc.Info()
	switch info.Family {
	case encoding.FamilyUTF8:
		return utf8Codec{}
	case encoding.FamilyUTF16:
		return utf16Codec{order: byteOrder(info.Endian)}
	case encoding.FamilyUTF32:
		return utf32Codec{order: byteOrder(info.Endian)}
	case encoding.FamilyCodePage:
		if info.CodePage != nil {
			return newCodePageCodec(info.CodePage)
		}
	}
	return nil
}

func byteOrder(e encoding.Endianness) binary.ByteOrder {
	if e == encoding.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// NewDecoder returns a Decoder for enc using policy. It fails with an
// Unimplemented error when enc has no decoder.
func NewDecoder(enc encoding.Encoding, policy ErrorPolicy) (Decoder, error) {
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	f := familyFor(enc)
	if f == nil {
		return nil, unsupported(enc)
	}
	return &decoder{enc: enc, policy: policy, unit: f}, nil
}

// NewEncoder returns an Encoder for enc using policy. It fails with an
// Unimplemented error when enc has no encoder.
func NewEncoder(enc encoding.Encoding, policy ErrorPolicy) (Encoder, error) {
	if err := checkPolicy(policy); err != nil {
		return nil, err
	}
	f := familyFor(enc)
	if f == nil {
		return nil, unsupported(enc)
	}
	return &encoder{enc: enc, policy: policy, unit: f}, nil
}

// CheckEncoding reports whether src is validly encoded in enc. A NUL
// character ends the content: it and anything after it are not checked,
// so C style terminated buffers are accepted. A single 0x00 byte left
// over after the last full code unit is accepted as a terminator too.
func CheckEncoding(src []byte, enc encoding.Encoding) (bool, error) {
	f := familyFor(enc)
	if f == nil {
		return false, unsupported(enc)
	}
	_, n := countValid(f, src)
	if n == len(src) {
		return true, nil
	}
	if len(src)-n == 1 && src[n] == 0 {
		return true, nil
	}
	r, _, st := f.decodeOne(src[n:])
	return st == statusOK && r == 0, nil
}
