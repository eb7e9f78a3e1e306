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
	"golang.org/x/text/encoding/charmap"
)

// asciiRanges maps the 7-bit range onto itself.
var asciiRanges = []Range{{CodePointStart: 0, ByteStart: 0, Length: 128}}

// charmaps lists the x/text tables the code pages are derived from.
var charmaps = map[Encoding]*charmap.Charmap{
	ISO8859_1:  charmap.ISO8859_1,
	ISO8859_2:  charmap.ISO8859_2,
	ISO8859_3:  charmap.ISO8859_3,
	ISO8859_4:  charmap.ISO8859_4,
	ISO8859_5:  charmap.ISO8859_5,
	ISO8859_6:  charmap.ISO8859_6,
	ISO8859_7:  charmap.ISO8859_7,
	ISO8859_8:  charmap.ISO8859_8,
	ISO8859_9:  charmap.ISO8859_9,
	ISO8859_10: charmap.ISO8859_10,
	ISO8859_13: charmap.ISO8859_13,
	ISO8859_14: charmap.ISO8859_14,
	ISO8859_15: charmap.ISO8859_15,
	ISO8859_16: charmap.ISO8859_16,

	Windows874:  charmap.Windows874,
	Windows1250: charmap.Windows1250,
	Windows1251: charmap.Windows1251,
	Windows1252: charmap.Windows1252,
	Windows1253: charmap.Windows1253,
	Windows1254: charmap.Windows1254,
	Windows1255: charmap.Windows1255,
	Windows1256: charmap.Windows1256,
	Windows1257: charmap.Windows1257,
	Windows1258: charmap.Windows1258,

	CodePage437: charmap.CodePage437,
	CodePage850: charmap.CodePage850,
	CodePage852: charmap.CodePage852,
	CodePage855: charmap.CodePage855,
	CodePage858: charmap.CodePage858,
	CodePage860: charmap.CodePage860,
	CodePage862: charmap.CodePage862,
	CodePage863: charmap.CodePage863,
	CodePage865: charmap.CodePage865,
	CodePage866: charmap.CodePage866,

	KOI8R:             charmap.KOI8R,
	KOI8U:             charmap.KOI8U,
	Macintosh:         charmap.Macintosh,
	MacintoshCyrillic: charmap.MacintoshCyrillic,
}

// rangesFromCharmap compresses the byte to rune table of cm into runs of
// consecutive bytes mapping to consecutive code points. Unmapped bytes
// are left out, and a byte whose code point is already claimed by a
// lower byte is dropped so that the mapping stays reversible.
func rangesFromCharmap(cm *charmap.Charmap) []Range {
	var (
		ranges []Range
		seen   = make(map[rune]bool, 256)
	)
	for i := 0; i < 256; i++ {
		b := byte(i)
		r := cm.DecodeByte(b)
		if r == '\uFFFD' || seen[r] {
			continue
		}
		seen[r] = true

		if n := len(ranges); n > 0 {
			last := &ranges[n-1]
			if last.byteEnd() == i && last.codePointEnd() == r {
				last.Length++
				continue
			}
		}
		ranges = append(ranges, Range{CodePointStart: r, ByteStart: b, Length: 1})
	}
	return ranges
}
