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
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"vitess.io/charconv/go/vterrors"
)

var catalog = [numEncodings]Info{
	Unknown: {Name: "UNKNOWN"},

	UTF8:    {Name: "UTF-8", Aliases: []string{"utf8"}, Family: FamilyUTF8, UnitSize: 1, MaxRuneSize: 4, Variable: true},
	UTF16LE: {Name: "UTF-16LE", Family: FamilyUTF16, UnitSize: 2, MaxRuneSize: 4, Variable: true, Endian: LittleEndian},
	UTF16BE: {Name: "UTF-16BE", Aliases: []string{"utf-16"}, Family: FamilyUTF16, UnitSize: 2, MaxRuneSize: 4, Variable: true, Endian: BigEndian},
	UTF32LE: {Name: "UTF-32LE", Family: FamilyUTF32, UnitSize: 4, MaxRuneSize: 4, Endian: LittleEndian},
	UTF32BE: {Name: "UTF-32BE", Aliases: []string{"utf-32"}, Family: FamilyUTF32, UnitSize: 4, MaxRuneSize: 4, Endian: BigEndian},
	ASCII:   {Name: "US-ASCII", Aliases: []string{"ascii", "ansi_x3.4-1968"}},

	ISO8859_1:  {Name: "ISO-8859-1"},
	ISO8859_2:  {Name: "ISO-8859-2"},
	ISO8859_3:  {Name: "ISO-8859-3"},
	ISO8859_4:  {Name: "ISO-8859-4"},
	ISO8859_5:  {Name: "ISO-8859-5"},
	ISO8859_6:  {Name: "ISO-8859-6"},
	ISO8859_7:  {Name: "ISO-8859-7"},
	ISO8859_8:  {Name: "ISO-8859-8"},
	ISO8859_9:  {Name: "ISO-8859-9"},
	ISO8859_10: {Name: "ISO-8859-10"},
	ISO8859_13: {Name: "ISO-8859-13"},
	ISO8859_14: {Name: "ISO-8859-14"},
	ISO8859_15: {Name: "ISO-8859-15"},
	ISO8859_16: {Name: "ISO-8859-16"},

	Windows874:  {Name: "windows-874"},
	Windows1250: {Name: "windows-1250", Aliases: []string{"cp1250"}},
	Windows1251: {Name: "windows-1251", Aliases: []string{"cp1251"}},
	Windows1252: {Name: "windows-1252", Aliases: []string{"cp1252"}},
	Windows1253: {Name: "windows-1253", Aliases: []string{"cp1253"}},
	Windows1254: {Name: "windows-1254", Aliases: []string{"cp1254"}},
	Windows1255: {Name: "windows-1255", Aliases: []string{"cp1255"}},
	Windows1256: {Name: "windows-1256", Aliases: []string{"cp1256"}},
	Windows1257: {Name: "windows-1257", Aliases: []string{"cp1257"}},
	Windows1258: {Name: "windows-1258", Aliases: []string{"cp1258"}},

	CodePage437: {Name: "IBM437", Aliases: []string{"cp437"}},
	CodePage850: {Name: "IBM850", Aliases: []string{"cp850"}},
	CodePage852: {Name: "IBM852", Aliases: []string{"cp852"}},
	CodePage855: {Name: "IBM855", Aliases: []string{"cp855"}},
	CodePage858: {Name: "IBM00858", Aliases: []string{"cp858", "ibm858"}},
	CodePage860: {Name: "IBM860", Aliases: []string{"cp860"}},
	CodePage862: {Name: "IBM862", Aliases: []string{"cp862"}},
	CodePage863: {Name: "IBM863", Aliases: []string{"cp863"}},
	CodePage865: {Name: "IBM865", Aliases: []string{"cp865"}},
	CodePage866: {Name: "IBM866", Aliases: []string{"cp866"}},

	KOI8R:             {Name: "KOI8-R"},
	KOI8U:             {Name: "KOI8-U"},
	Macintosh:         {Name: "macintosh", Aliases: []string{"mac"}},
	MacintoshCyrillic: {Name: "x-mac-cyrillic"},
}

// byName indexes canonical names and aliases by their normalized form.
var byName = map[string]Encoding{}

func init() {
	for e := UTF8; e < numEncodings; e++ {
		info := &catalog[e]
		switch {
		case e == ASCII:
			info.Family, info.UnitSize, info.MaxRuneSize = FamilyCodePage, 1, 1
			info.CodePage = MustCodePage(info.Name, asciiRanges)
		case charmaps[e] != nil:
			info.Family, info.UnitSize, info.MaxRuneSize = FamilyCodePage, 1, 1
			info.CodePage = MustCodePage(info.Name, rangesFromCharmap(charmaps[e]))
		}

		byName[normalizeName(info.Name)] = e
		for _, alias := range info.Aliases {
			byName[normalizeName(alias)] = e
		}
	}
}

// normalizeName folds case and drops the punctuation that commonly varies
// between spellings of the same name, so "utf_8", "UTF8" and "utf-8" match.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.', ':':
			return -1
		}
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(name))
}

// All returns every supported encoding except Unknown, in declaration order.
func All() []Encoding {
	all := make([]Encoding, 0, numEncodings-1)
	for e := UTF8; e < numEncodings; e++ {
		all = append(all, e)
	}
	return all
}

// CodePageFor returns the code page table for e, or nil when e is not a
// code page encoding.
func CodePageFor(e Encoding) *CodePage {
	return e.Info().CodePage
}

// Lookup resolves a name to an Encoding. Canonical names and aliases are
// matched first, then IANA names and aliases, then WHATWG labels.
func Lookup(name string) (Encoding, error) {
	if e, ok := byName[normalizeName(name)]; ok {
		return e, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		if e, ok := fromText(enc); ok {
			return e, nil
		}
	}
	if enc, err := htmlindex.Get(name); err == nil {
		if e, ok := fromText(enc); ok {
			return e, nil
		}
	}
	return Unknown, vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.UnknownEncodingName, "unknown encoding name %q", name)
}

// MustLookup is like Lookup but panics if name is unknown.
func MustLookup(name string) Encoding {
	e, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return e
}

// fromText maps an x/text encoding back to the catalog entry built from it.
func fromText(enc xencoding.Encoding) (Encoding, bool) {
	if enc == unicode.UTF8 {
		return UTF8, true
	}
	for e, cm := range charmaps {
		if enc == xencoding.Encoding(cm) {
			return e, true
		}
	}
	return Unknown, false
}
