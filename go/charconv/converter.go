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

// Package charconv converts text between character encodings.
//
// A Converter decodes its source encoding into code points and encodes
// them into the target encoding. It can be fed arbitrary chunks of a
// stream: a character split across two chunks is held back as carry-over
// and completed by the next call.
package charconv

import (
	"errors"

	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/vterrors"
)

// State is the session state of a Converter.
type State int

const (
	// Ready means no conversion is in progress.
	Ready State = iota
	// Streaming means a session was started and has not seen its final
	// chunk yet.
	Streaming
)

func (s State) String() string {
	if s == Streaming {
		return "STREAMING"
	}
	return "READY"
}

// DefaultStageSize is the default number of code points decoded per batch.
const DefaultStageSize = 1024

// maxCharSize bounds the bytes any supported encoding needs for one
// character.
const maxCharSize = encoding.MaxCarry + 1

type options struct {
	policy    codec.ErrorPolicy
	stageSize int
}

// Option configures a Converter.
type Option func(*options)

// WithErrorPolicy sets the policy used for both malformed input and
// characters the target encoding cannot represent. The default is
// codec.Throw.
func WithErrorPolicy(p codec.ErrorPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithStageSize sets how many code points are decoded per batch.
func WithStageSize(n int) Option {
	return func(o *options) {
		o.stageSize = max(n, 1)
	}
}

// Converter transcodes a stream of chunks from one encoding to another.
// A Converter is not safe for concurrent use.
type Converter struct {
	dec     codec.Decoder
	enc     codec.Encoder
	maxRune int
	stage   []rune

	carry  [encoding.MaxCarry]byte
	nCarry int

	state State
	// pos is the session offset of the first byte not yet converted,
	// which is the first carried byte when there is carry-over.
	pos int
	// tail holds the last bytes before pos.
	tail    [codec.TailSize]byte
	nTail   int
	written int
	// err is set by a Throw failure and returned until Reset.
	err error
}

// NewConverter returns a Converter from one encoding to another.
func NewConverter(from, to encoding.Encoding, opts ...Option) (*Converter, error) {
	o := options{policy: codec.Throw, stageSize: DefaultStageSize}
	for _, opt := range opts {
		opt(&o)
	}
	dec, err := codec.NewDecoder(from, o.policy)
	if err != nil {
		return nil, vterrors.Wrapf(err, "source encoding")
	}
	enc, err := codec.NewEncoder(to, o.policy)
	if err != nil {
		return nil, vterrors.Wrapf(err, "target encoding")
	}
	return &Converter{
		dec:     dec,
		enc:     enc,
		maxRune: to.Info().MaxRuneSize,
		stage:   make([]rune, o.stageSize),
	}, nil
}

// From returns the source encoding.
func (c *Converter) From() encoding.Encoding {
	return c.dec.Encoding()
}

// To returns the target encoding.
func (c *Converter) To() encoding.Encoding {
	return c.enc.Encoding()
}

// ErrorPolicy returns the policy the Converter was built with.
func (c *Converter) ErrorPolicy() codec.ErrorPolicy {
	return c.dec.ErrorPolicy()
}

// State returns the session state.
func (c *Converter) State() State {
	return c.state
}

// Pending returns the number of carried-over bytes waiting for the rest
// of their character.
func (c *Converter) Pending() int {
	return c.nCarry
}

// Reset discards carry-over and any error and starts a new session.
func (c *Converter) Reset() {
	c.nCarry = 0
	c.finish()
	c.err = nil
}

// Convert converts src into dst and returns the number of bytes of src
// consumed and of dst written.
//
// When final is false and src ends in the middle of a character, those
// bytes are kept as carry-over. They are not counted in nSrc and must not
// be passed again: the next call completes them. A call with final set
// ends the session and resolves any carry-over through the error policy.
//
// When dst cannot hold the next character Convert returns
// transform.ErrShortDst; call again with src[nSrc:] and more room. Under
// codec.Throw the first invalid or unrepresentable character stops the
// session with a *codec.ConversionError whose Offset is a byte offset in
// the session's source stream and whose Written counts the bytes written
// in the session. The error is returned by every later call until Reset.
func (c *Converter) Convert(dst, src []byte, final bool) (nSrc, nDst int, err error) {
	if c.err != nil {
		return 0, 0, c.err
	}
	c.state = Streaming

	if c.nCarry > 0 {
		if final {
			log.DebugS("resolving carry-over on final chunk", "from", c.From().String(), "pending", c.nCarry)
		}
		var done bool
		nSrc, nDst, done, err = c.resolveCarry(dst, src, final)
		if err != nil || done {
			c.written += nDst
			return nSrc, nDst, err
		}
	}

	// drop the rest of an invalid sequence split by a chunk boundary
	if n := c.dec.Resync(c.tail[:c.nTail], src[nSrc:]); n > 0 {
		c.advance(src[nSrc : nSrc+n])
		nSrc += n
	}

	n, w, err := c.convertMain(dst[nDst:], src[nSrc:], final, nDst)
	nSrc += n
	nDst += w
	c.written += nDst
	if err == nil && final {
		c.finish()
	}
	return nSrc, nDst, err
}

// resolveCarry completes the carried-over character using the front of
// src. done is true when the call has nothing more to do.
func (c *Converter) resolveCarry(dst, src []byte, final bool) (nSrc, nDst int, done bool, err error) {
	var (
		scratch [encoding.MaxCarry + maxCharSize]byte
		r       [1]rune
	)
	for c.nCarry > 0 {
		k := min(len(src)-nSrc, maxCharSize)
		buf := append(append(scratch[:0], c.carry[:c.nCarry]...), src[nSrc:nSrc+k]...)
		fin := final && nSrc+k == len(src)

		n, w, derr := c.dec.Decode(r[:], buf, fin)
		switch {
		case errors.Is(derr, transform.ErrShortSrc):
			if n < c.nCarry {
				// the rest of src is the continuation of a character
				c.advance(buf[:n])
				c.nCarry = copy(c.carry[:], buf[n:])
				return nSrc, nDst, true, nil
			}
		case derr != nil && !errors.Is(derr, transform.ErrShortDst):
			return nSrc, nDst, true, c.fail(derr, c.pos+n, nDst)
		}

		if w == 1 {
			_, m, eerr := c.enc.Encode(dst[nDst:], r[:])
			if eerr != nil {
				if errors.Is(eerr, transform.ErrShortDst) {
					return nSrc, nDst, true, eerr
				}
				return nSrc, nDst, true, c.fail(eerr, c.pos, nDst)
			}
			nDst += m
		}

		// commit the n bytes of buf the decoder consumed
		c.advance(buf[:n])
		if n < c.nCarry {
			c.nCarry = copy(c.carry[:], c.carry[n:c.nCarry])
		} else {
			nSrc += n - c.nCarry
			c.nCarry = 0
		}
	}
	return nSrc, nDst, false, nil
}

// convertMain converts src, which starts on a character boundary.
// written is the number of bytes already produced by this call.
func (c *Converter) convertMain(dst, src []byte, final bool, written int) (nSrc, nDst int, err error) {
	for nSrc < len(src) {
		batch := min(len(c.stage), (len(dst)-nDst)/c.maxRune)
		if batch == 0 {
			// not enough room for a worst case character, go one at a time
			n, w, err := c.convertOne(dst[nDst:], src[nSrc:], final, written+nDst)
			nSrc += n
			nDst += w
			if err != nil || n == 0 || c.nCarry > 0 {
				return nSrc, nDst, err
			}
			continue
		}

		n, w, derr := c.dec.Decode(c.stage[:batch], src[nSrc:], final)
		k, m, eerr := c.enc.Encode(dst[nDst:], c.stage[:w])
		if eerr != nil {
			// keep the k code points that made it and find their size
			if k > 0 {
				n, _, _ = c.dec.Decode(c.stage[:k], src[nSrc:], final)
			} else {
				n = 0
			}
			c.advance(src[nSrc : nSrc+n])
			nSrc += n
			nDst += m
			if errors.Is(eerr, transform.ErrShortDst) {
				return nSrc, nDst, eerr
			}
			return nSrc, nDst, c.fail(eerr, c.pos, written+nDst)
		}

		c.advance(src[nSrc : nSrc+n])
		nSrc += n
		nDst += m

		switch {
		case derr == nil || errors.Is(derr, transform.ErrShortDst):
		case errors.Is(derr, transform.ErrShortSrc):
			return nSrc, nDst, c.keep(src[nSrc:])
		default:
			return nSrc, nDst, c.fail(derr, c.pos, written+nDst)
		}
	}
	return nSrc, nDst, nil
}

// convertOne converts a single character when dst is nearly full. It
// consumes nothing and returns transform.ErrShortDst if the character
// does not fit.
func (c *Converter) convertOne(dst, src []byte, final bool, written int) (nSrc, nDst int, err error) {
	n, w, derr := c.dec.Decode(c.stage[:1], src, final)
	switch {
	case derr == nil || errors.Is(derr, transform.ErrShortDst):
	case errors.Is(derr, transform.ErrShortSrc):
		if w == 0 {
			c.advance(src[:n])
			return n, 0, c.keep(src[n:])
		}
	default:
		return 0, 0, c.fail(derr, c.pos+n, written)
	}

	if w == 1 && c.enc.RequiredByteCount(c.stage[:1]) > len(dst) {
		return 0, 0, transform.ErrShortDst
	}
	_, m, eerr := c.enc.Encode(dst, c.stage[:w])
	if eerr != nil {
		return 0, 0, c.fail(eerr, c.pos, written)
	}
	c.advance(src[:n])
	return n, m, nil
}

// keep stores an incomplete trailing character as carry-over.
func (c *Converter) keep(tail []byte) error {
	if len(tail) > len(c.carry) {
		return c.fail(vterrors.Errorf(vterrors.Internal, "carry-over of %d bytes exceeds %d", len(tail), len(c.carry)), c.pos, 0)
	}
	c.nCarry = copy(c.carry[:], tail)
	return nil
}

// fail records a Throw failure at the given session offset.
func (c *Converter) fail(err error, offset, written int) error {
	var cerr *codec.ConversionError
	if errors.As(err, &cerr) {
		e := *cerr
		e.Offset = offset
		e.Written = c.written + written
		err = &e
	}
	log.DebugS("conversion aborted", "from", c.From().String(), "to", c.To().String(), "offset", offset, "error", err)
	c.err = err
	return err
}

// advance moves pos past b, the bytes just converted.
func (c *Converter) advance(b []byte) {
	c.pos += len(b)
	if len(b) >= len(c.tail) {
		c.nTail = copy(c.tail[:], b[len(b)-len(c.tail):])
		return
	}
	keep := min(c.nTail, len(c.tail)-len(b))
	copy(c.tail[:], c.tail[c.nTail-keep:c.nTail])
	c.nTail = keep + copy(c.tail[keep:], b)
}

func (c *Converter) finish() {
	c.state = Ready
	c.pos = 0
	c.nTail = 0
	c.written = 0
}
