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

package encoding

import (
	"fmt"
	"slices"
)

// Range maps Length consecutive byte values starting at ByteStart to
// Length consecutive code points starting at CodePointStart.
type Range struct {
	CodePointStart rune
	ByteStart      byte
	Length         int
}

func (r Range) byteEnd() int {
	return int(r.ByteStart) + r.Length
}

func (r Range) codePointEnd() rune {
	return r.CodePointStart + rune(r.Length)
}

// CodePage translates between the bytes of a single byte encoding and
// code points. It is immutable after construction and safe for
// concurrent use.
type CodePage struct {
	name        string
	byByte      []Range
	byCodePoint []Range
}

// NewCodePage builds a CodePage from ranges. Ranges must be non-empty,
// fit in a single byte and overlap neither in byte space nor in code
// point space.
func NewCodePage(name string, ranges []Range) (*CodePage, error) {
	for _, r := range ranges {
		if r.Length <= 0 {
			return nil, fmt.Errorf("code page %s: empty range at byte 0x%02X", name, r.ByteStart)
		}
		if r.byteEnd() > 256 {
			return nil, fmt.Errorf("code page %s: range at byte 0x%02X overflows a byte", name, r.ByteStart)
		}
		if r.CodePointStart < 0 || r.codePointEnd() > 0x110000 {
			return nil, fmt.Errorf("code page %s: range at byte 0x%02X is outside Unicode", name, r.ByteStart)
		}
	}

	cp := &CodePage{
		name:        name,
		byByte:      slices.Clone(ranges),
		byCodePoint: slices.Clone(ranges),
	}
	slices.SortFunc(cp.byByte, func(a, b Range) int { return int(a.ByteStart) - int(b.ByteStart) })
	slices.SortFunc(cp.byCodePoint, func(a, b Range) int { return int(a.CodePointStart - b.CodePointStart) })

	for i := 1; i < len(cp.byByte); i++ {
		if cp.byByte[i-1].byteEnd() > int(cp.byByte[i].ByteStart) {
			return nil, fmt.Errorf("code page %s: byte ranges overlap at 0x%02X", name, cp.byByte[i].ByteStart)
		}
	}
	for i := 1; i < len(cp.byCodePoint); i++ {
		if cp.byCodePoint[i-1].codePointEnd() > cp.byCodePoint[i].CodePointStart {
			return nil, fmt.Errorf("code page %s: code point ranges overlap at U+%04X", name, cp.byCodePoint[i].CodePointStart)
		}
	}
	return cp, nil
}

// MustCodePage is like NewCodePage but panics on invalid ranges.
func MustCodePage(name string, ranges []Range) *CodePage {
	cp, err := NewCodePage(name, ranges)
	if err != nil {
		panic(err)
	}
	return cp
}

// Name returns the name the code page was built with.
func (cp *CodePage) Name() string {
	return cp.name
}

// Ranges returns a copy of the ranges ordered by byte value.
func (cp *CodePage) Ranges() []Range {
	return slices.Clone(cp.byByte)
}

// Decode returns the code point for b. The boolean is false when b is
// not mapped.
func (cp *CodePage) Decode(b byte) (rune, bool) {
	ranges := cp.byByte
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if ranges[mid].byteEnd() <= int(b) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(ranges) && ranges[lo].ByteStart <= b {
		r := ranges[lo]
		return r.CodePointStart + rune(b-r.ByteStart), true
	}
	return 0, false
}

// Encode returns the byte for r. The boolean is false when r has no
// mapping in this code page.
func (cp *CodePage) Encode(r rune) (byte, bool) {
	ranges := cp.byCodePoint
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if ranges[mid].codePointEnd() <= r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(ranges) && ranges[lo].CodePointStart <= r {
		rng := ranges[lo]
		return rng.ByteStart + byte(r-rng.CodePointStart), true
	}
	return 0, false
}
