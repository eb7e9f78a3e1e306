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

// Package encoding is the catalog of character encodings known to charconv.
//
// Every Encoding value other than Unknown has exactly one Info entry that
// describes its code unit width, endianness and display name, and for code
// pages a reference to the CodePage range table used to translate bytes.
package encoding

import (
	"encoding/binary"
)

// Encoding identifies a character encoding.
type Encoding int

// Supported encodings. Unknown is the zero value.
const (
	Unknown Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
	ASCII

	ISO8859_1
	ISO8859_2
	ISO8859_3
	ISO8859_4
	ISO8859_5
	ISO8859_6
	ISO8859_7
	ISO8859_8
	ISO8859_9
	ISO8859_10
	ISO8859_13
	ISO8859_14
	ISO8859_15
	ISO8859_16

	Windows874
	Windows1250
	Windows1251
	Windows1252
	Windows1253
	Windows1254
	Windows1255
	Windows1256
	Windows1257
	Windows1258

	CodePage437
	CodePage850
	CodePage852
	CodePage855
	CodePage858
	CodePage860
	CodePage862
	CodePage863
	CodePage865
	CodePage866

	KOI8R
	KOI8U
	Macintosh
	MacintoshCyrillic

	// numEncodings must stay last.
	numEncodings
)

// Family groups encodings that share a decoder and encoder implementation.
type Family int

// Encoding families.
const (
	FamilyUnknown Family = iota
	FamilyUTF8
	FamilyUTF16
	FamilyUTF32
	FamilyCodePage
)

func (f Family) String() string {
	switch f {
	case FamilyUTF8:
		return "utf8"
	case FamilyUTF16:
		return "utf16"
	case FamilyUTF32:
		return "utf32"
	case FamilyCodePage:
		return "codepage"
	default:
		return "unknown"
	}
}

// Endianness is the byte order of multi-byte code units.
type Endianness int

// Byte orders. Single byte encodings have NoEndianness.
const (
	NoEndianness Endianness = iota
	LittleEndian
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return ""
	}
}

// Info is the static metadata of an Encoding.
type Info struct {
	// Name is the canonical display name.
	Name string
	// Aliases are extra names accepted by Lookup.
	Aliases []string
	Family  Family
	// UnitSize is the size in bytes of one code unit.
	UnitSize int
	// MaxRuneSize is the largest number of bytes a single code point
	// can take in this encoding.
	MaxRuneSize int
	// Variable is true when code points take a variable number of units.
	Variable bool
	Endian   Endianness
	// CodePage is the byte translation table. It is nil unless Family
	// is FamilyCodePage.
	CodePage *CodePage
}

// Info returns the metadata of e. Unknown and out of range values return
// the Unknown entry.
func (e Encoding) Info() Info {
	if !e.Valid() {
		return catalog[Unknown]
	}
	return catalog[e]
}

// String returns the canonical name of e.
func (e Encoding) String() string {
	return e.Info().Name
}

// Valid reports whether e is a known encoding other than Unknown.
func (e Encoding) Valid() bool {
	return e > Unknown && e < numEncodings
}

// MaxCarry is the most bytes a partial character can occupy in any
// supported encoding.
const MaxCarry = 3

// UTF16Native and UTF32Native are the UTF-16 and UTF-32 variants that use
// the byte order of the host.
var (
	UTF16Native = UTF16LE
	UTF32Native = UTF32LE
)

func init() {
	if hostByteOrder() == BigEndian {
		UTF16Native = UTF16BE
		UTF32Native = UTF32BE
	}
}

func hostByteOrder() Endianness {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0102 {
		return BigEndian
	}
	return LittleEndian
}
