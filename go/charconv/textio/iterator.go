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

package textio

import (
	"errors"
	"io"
	"iter"

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
)

const iteratorStage = 256

// Iterator decodes one code point at a time from a byte slice or a
// reader.
type Iterator struct {
	dec codec.Decoder
	r   io.Reader

	buf        []byte
	start, end int
	eof        bool

	stage []rune
	runes []rune
	pos   int

	err error
}

// NewBytesIterator returns an Iterator over src.
func NewBytesIterator(src []byte, enc encoding.Encoding, policy codec.ErrorPolicy) (*Iterator, error) {
	dec, err := codec.NewDecoder(enc, policy)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		dec:   dec,
		buf:   src,
		end:   len(src),
		eof:   true,
		stage: make([]rune, iteratorStage),
	}, nil
}

// NewIterator returns an Iterator reading from r.
func NewIterator(r io.Reader, enc encoding.Encoding, policy codec.ErrorPolicy) (*Iterator, error) {
	dec, err := codec.NewDecoder(enc, policy)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		dec:   dec,
		r:     r,
		buf:   make([]byte, bufferSize),
		stage: make([]rune, iteratorStage),
	}, nil
}

// Next returns the next code point. It returns false at the end of the
// input or after an error; Err tells them apart.
func (it *Iterator) Next() (rune, bool) {
	if it.pos == len(it.runes) && !it.advance() {
		return 0, false
	}
	r := it.runes[it.pos]
	it.pos++
	return r, true
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// All returns the remaining code points as a sequence.
func (it *Iterator) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for r, ok := it.Next(); ok; r, ok = it.Next() {
			if !yield(r) {
				return
			}
		}
	}
}

// advance decodes the next batch into runes.
func (it *Iterator) advance() bool {
	for {
		if it.err != nil {
			return false
		}
		if it.start == it.end {
			if it.eof {
				return false
			}
			it.fill()
			continue
		}

		// drop the rest of an invalid sequence split by a read boundary
		tail := it.buf[max(it.start-codec.TailSize, 0):it.start]
		if n := it.dec.Resync(tail, it.buf[it.start:it.end]); n > 0 {
			it.start += n
			continue
		}

		n, w, err := it.dec.Decode(it.stage, it.buf[it.start:it.end], it.eof)
		it.start += n
		it.runes, it.pos = it.stage[:w], 0
		switch {
		case err == nil || errors.Is(err, transform.ErrShortDst):
		case errors.Is(err, transform.ErrShortSrc):
			if w == 0 {
				it.fill()
				continue
			}
		default:
			// the valid prefix is still returned
			it.err = err
		}
		if w > 0 {
			return true
		}
	}
}

// fill reads more input behind the undecoded bytes. The last few decoded
// bytes are kept in front of them for Resync.
func (it *Iterator) fill() {
	if it.r == nil {
		it.eof = true
		return
	}
	from := max(it.start-codec.TailSize, 0)
	it.end = copy(it.buf, it.buf[from:it.end])
	it.start -= from

	n, err := it.r.Read(it.buf[it.end:])
	it.end += n
	switch {
	case errors.Is(err, io.EOF):
		it.eof = true
	case err != nil:
		it.err = err
	}
}
