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

// Package textio adapts charconv to io.Reader, io.Writer and the
// golang.org/x/text transform package.
package textio

import (
	"bufio"
	"errors"
	"io"

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/bucketpool"
	"vitess.io/charconv/go/charconv"
	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/detect"
	"vitess.io/charconv/go/charconv/encoding"
)

const bufferSize = 32 * 1024

// buffers holds the scratch buffers of Copy.
var buffers = bucketpool.New(4*1024, bufferSize)

// Transformer is a transform.Transformer backed by a charconv.Converter.
type Transformer struct {
	c *charconv.Converter
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer converting from one encoding to
// another.
func NewTransformer(from, to encoding.Encoding, policy codec.ErrorPolicy) (*Transformer, error) {
	c, err := charconv.NewConverter(from, to, charconv.WithErrorPolicy(policy))
	if err != nil {
		return nil, err
	}
	return &Transformer{c: c}, nil
}

// Transform implements transform.Transformer. Bytes the converter keeps as
// carry-over are reported as consumed.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nSrc, nDst, err = t.c.Convert(dst, src, atEOF)
	if err == nil {
		nSrc = len(src)
	}
	return nDst, nSrc, err
}

// Reset implements transform.Transformer.
func (t *Transformer) Reset() {
	t.c.Reset()
}

// NewReader returns a reader that converts the contents of r.
func NewReader(r io.Reader, from, to encoding.Encoding, policy codec.ErrorPolicy) (io.Reader, error) {
	t, err := NewTransformer(from, to, policy)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, t), nil
}

// NewWriter returns a writer that converts what is written to it and
// passes the result to w. Close must be called to flush the final bytes;
// it does not close w.
func NewWriter(w io.Writer, from, to encoding.Encoding, policy codec.ErrorPolicy) (io.WriteCloser, error) {
	t, err := NewTransformer(from, to, policy)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, t), nil
}

// Copy converts everything read from src and writes it to dst. It
// returns the number of bytes read and written.
func Copy(dst io.Writer, src io.Reader, from, to encoding.Encoding, policy codec.ErrorPolicy) (read, written int64, err error) {
	c, err := charconv.NewConverter(from, to, charconv.WithErrorPolicy(policy))
	if err != nil {
		return 0, 0, err
	}

	inBuf, outBuf := buffers.Get(bufferSize), buffers.Get(bufferSize)
	defer buffers.Put(inBuf)
	defer buffers.Put(outBuf)
	in, out := *inBuf, *outBuf

	for eof := false; !eof; {
		n, rerr := src.Read(in)
		read += int64(n)
		switch {
		case errors.Is(rerr, io.EOF):
			eof = true
		case rerr != nil:
			return read, written, rerr
		}

		chunk := in[:n]
		for {
			nSrc, nDst, cerr := c.Convert(out, chunk, eof)
			if nDst > 0 {
				m, werr := dst.Write(out[:nDst])
				written += int64(m)
				if werr != nil {
					return read, written, werr
				}
			}
			if errors.Is(cerr, transform.ErrShortDst) {
				chunk = chunk[nSrc:]
				continue
			}
			if cerr != nil {
				return read, written, cerr
			}
			break
		}
	}
	return read, written, nil
}

// SkipBOM detects the encoding of r and discards its byte order mark,
// if any.
func SkipBOM(r *bufio.Reader) (detect.Result, error) {
	res, err := detect.Peek(r)
	if err != nil {
		return res, err
	}
	if _, err := r.Discard(res.BOMLength); err != nil {
		return res, err
	}
	return res, nil
}
