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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/vterrors"
)

// feed runs chunks through c, resending unconsumed input whenever dst
// fills up.
func feed(t *testing.T, c *Converter, chunks [][]byte, dstSize int) ([]byte, error) {
	t.Helper()
	var out []byte
	dst := make([]byte, dstSize)
	for i, chunk := range chunks {
		final := i == len(chunks)-1
		for {
			nSrc, nDst, err := c.Convert(dst, chunk, final)
			out = append(out, dst[:nDst]...)
			if errors.Is(err, transform.ErrShortDst) {
				chunk = chunk[nSrc:]
				continue
			}
			if err != nil {
				return out, err
			}
			break
		}
	}
	return out, nil
}

func mustEncode(t *testing.T, text string, enc encoding.Encoding) []byte {
	t.Helper()
	out, err := Convert(nil, enc, []byte(text), encoding.UTF8, codec.Throw)
	require.NoError(t, err)
	return out
}

var samples = []struct {
	enc  encoding.Encoding
	text string
}{
	{encoding.UTF8, "Grüße, мир! 😀 ☃ \U0010FFFF ok"},
	{encoding.UTF16LE, "Grüße, мир! 😀 ☃ \U0010FFFF ok"},
	{encoding.UTF16BE, "Grüße, мир! 😀 ☃ \U0010FFFF ok"},
	{encoding.UTF32LE, "Grüße, мир! 😀 ☃ \U0010FFFF ok"},
	{encoding.UTF32BE, "Grüße, мир! 😀 ☃ \U0010FFFF ok"},
	{encoding.ISO8859_5, "Привет, мир"},
	{encoding.Windows1252, "Grüße € œ"},
	{encoding.ASCII, "Hello!"},
}

func TestChunkInvariance(t *testing.T) {
	targets := []encoding.Encoding{encoding.UTF8, encoding.UTF16BE, encoding.UTF32LE}
	for _, sample := range samples {
		src := mustEncode(t, sample.text, sample.enc)
		for _, to := range targets {
			t.Run(fmt.Sprintf("%s-%s", sample.enc, to), func(t *testing.T) {
				want, err := Convert(nil, to, src, sample.enc, codec.Throw)
				require.NoError(t, err)
				assert.Equal(t, mustEncode(t, sample.text, to), want)

				for split := 0; split <= len(src); split++ {
					c, err := NewConverter(sample.enc, to)
					require.NoError(t, err)

					dst := make([]byte, 256)
					n1, w1, err := c.Convert(dst, src[:split], false)
					require.NoError(t, err)
					assert.Equal(t, split, n1+c.Pending(), "split %d", split)
					assert.Equal(t, Streaming, c.State())

					n2, w2, err := c.Convert(dst[w1:], src[split:], true)
					require.NoError(t, err)
					assert.Equal(t, len(src)-split, n2)
					assert.Equal(t, want, dst[:w1+w2], "split %d", split)
					assert.Equal(t, Ready, c.State())
					assert.Zero(t, c.Pending())
				}
			})
		}
	}
}

func TestByteAtATime(t *testing.T) {
	for _, sample := range samples {
		t.Run(sample.enc.String(), func(t *testing.T) {
			src := mustEncode(t, sample.text, sample.enc)
			c, err := NewConverter(sample.enc, encoding.UTF8)
			require.NoError(t, err)

			var out []byte
			dst := make([]byte, 16)
			for i := range src {
				nSrc, nDst, err := c.Convert(dst, src[i:i+1], false)
				require.NoError(t, err)
				assert.LessOrEqual(t, nSrc, 1)
				out = append(out, dst[:nDst]...)
			}
			_, nDst, err := c.Convert(dst, nil, true)
			require.NoError(t, err)
			out = append(out, dst[:nDst]...)
			assert.Equal(t, sample.text, string(out))
		})
	}
}

func TestSmallDestination(t *testing.T) {
	for _, sample := range samples[:5] {
		src := mustEncode(t, sample.text, sample.enc)
		for _, to := range []encoding.Encoding{encoding.UTF8, encoding.UTF16LE, encoding.UTF32BE} {
			for dstSize := 4; dstSize <= 9; dstSize++ {
				c, err := NewConverter(sample.enc, to, WithStageSize(3))
				require.NoError(t, err)
				got, err := feed(t, c, [][]byte{src[:5], src[5:]}, dstSize)
				require.NoError(t, err)
				assert.Equal(t, mustEncode(t, sample.text, to), got, "%s->%s dst %d", sample.enc, to, dstSize)
			}
		}
	}
}

func TestShortDstDuringCarry(t *testing.T) {
	c, err := NewConverter(encoding.UTF8, encoding.UTF32BE)
	require.NoError(t, err)

	dst := make([]byte, 8)
	nSrc, nDst, err := c.Convert(dst, []byte("\xF0\x9F"), false)
	require.NoError(t, err)
	assert.Zero(t, nSrc)
	assert.Zero(t, nDst)
	assert.Equal(t, 2, c.Pending())

	nSrc, nDst, err = c.Convert(dst[:2], []byte("\x98\x80A"), true)
	assert.ErrorIs(t, err, transform.ErrShortDst)
	assert.Zero(t, nSrc)
	assert.Zero(t, nDst)
	assert.Equal(t, 2, c.Pending())

	nSrc, nDst, err = c.Convert(dst, []byte("\x98\x80A"), true)
	require.NoError(t, err)
	assert.Equal(t, 3, nSrc)
	assert.Equal(t, []byte{0, 1, 0xF6, 0x00, 0, 0, 0, 'A'}, dst[:nDst])
}

func TestOneAtATimeNearFullDestination(t *testing.T) {
	c, err := NewConverter(encoding.UTF8, encoding.UTF16BE)
	require.NoError(t, err)

	// three bytes of room is less than a worst case UTF-16 character
	dst := make([]byte, 3)
	nSrc, nDst, err := c.Convert(dst, []byte("a😀"), true)
	assert.ErrorIs(t, err, transform.ErrShortDst)
	assert.Equal(t, 1, nSrc)
	assert.Equal(t, []byte{0, 'a'}, dst[:nDst])

	nSrc, nDst, err = c.Convert(dst, []byte("😀"), true)
	assert.ErrorIs(t, err, transform.ErrShortDst)
	assert.Zero(t, nSrc)
	assert.Zero(t, nDst)

	dst = make([]byte, 4)
	nSrc, nDst, err = c.Convert(dst, []byte("😀"), true)
	require.NoError(t, err)
	assert.Equal(t, 4, nSrc)
	assert.Equal(t, []byte{0xD8, 0x3D, 0xDE, 0x00}, dst[:nDst])
}

func TestThrowAcrossChunks(t *testing.T) {
	c, err := NewConverter(encoding.UTF8, encoding.UTF16LE)
	require.NoError(t, err)

	dst := make([]byte, 64)
	_, nDst, err := c.Convert(dst, []byte("ab"), false)
	require.NoError(t, err)
	assert.Equal(t, 4, nDst)

	nSrc, nDst, err := c.Convert(dst, []byte("c\xFFd"), false)
	require.Error(t, err)
	assert.Equal(t, 1, nSrc)
	assert.Equal(t, 2, nDst)

	var cerr *codec.ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 3, cerr.Offset)
	assert.Equal(t, 6, cerr.Written)
	assert.Equal(t, vterrors.MalformedInput, cerr.State)

	// sticky until Reset
	_, _, err2 := c.Convert(dst, []byte("x"), true)
	assert.Same(t, err, err2)

	c.Reset()
	assert.Equal(t, Ready, c.State())
	_, nDst, err = c.Convert(dst, []byte("x"), true)
	require.NoError(t, err)
	assert.Equal(t, []byte{'x', 0}, dst[:nDst])
}

func TestThrowUnrepresentable(t *testing.T) {
	c, err := NewConverter(encoding.UTF8, encoding.ISO8859_1)
	require.NoError(t, err)

	dst := make([]byte, 64)
	nSrc, nDst, err := c.Convert(dst, []byte("aé€b"), true)
	require.Error(t, err)
	assert.Equal(t, 3, nSrc)
	assert.Equal(t, []byte("a\xE9"), dst[:nDst])

	var cerr *codec.ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, vterrors.UnrepresentableCharacter, cerr.State)
	assert.Equal(t, 3, cerr.Offset)
	assert.Equal(t, 2, cerr.Written)
	assert.Equal(t, '€', cerr.Rune)
}

func TestFinalCarry(t *testing.T) {
	testcases := []struct {
		policy codec.ErrorPolicy
		want   string
	}{
		{codec.Replace, "ab\uFFFD"},
		{codec.Skip, "ab"},
	}
	for _, tc := range testcases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			c, err := NewConverter(encoding.UTF16LE, encoding.UTF8, WithErrorPolicy(tc.policy))
			require.NoError(t, err)
			got, err := feed(t, c, [][]byte{{'a', 0, 'b', 0, 0x3D}, {0xD8}, nil}, 32)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
			assert.Equal(t, Ready, c.State())
		})
	}

	t.Run("THROW", func(t *testing.T) {
		c, err := NewConverter(encoding.UTF16LE, encoding.UTF8)
		require.NoError(t, err)
		dst := make([]byte, 32)
		_, nDst, err := c.Convert(dst, []byte{'a', 0, 'b', 0, 0x3D, 0xD8}, false)
		require.NoError(t, err)
		assert.Equal(t, 2, nDst)
		assert.Equal(t, 2, c.Pending())

		_, _, err = c.Convert(dst, nil, true)
		var cerr *codec.ConversionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 4, cerr.Offset)
		assert.Equal(t, 2, cerr.Written)
		assert.Equal(t, []byte{0x3D, 0xD8}, cerr.Bad)
	})
}

func TestCarryPartiallyInvalid(t *testing.T) {
	// a high surrogate and one more byte are carried; the next chunk shows
	// the surrogate is unpaired
	c, err := NewConverter(encoding.UTF16LE, encoding.UTF8, WithErrorPolicy(codec.Replace))
	require.NoError(t, err)
	got, err := feed(t, c, [][]byte{{0x3D, 0xD8, 'A'}, {0, 'B', 0}}, 32)
	require.NoError(t, err)
	assert.Equal(t, "\uFFFDAB", string(got))
}

func TestInvalidRunAcrossChunks(t *testing.T) {
	inputs := []string{
		"a\x80\x80\x80b",
		"\x80\x80",
		"é\x80\x80\x80\x80\x80x",
		"\xF0\x9F\x98\x80\x80\x80y",
		"\xC3\xC0\x80\x80\x80\x80\x80\x80z",
		"ok \xC0\x80 \xED\xA0\x80 \xF0\x9F end \xE2",
		"\xFF\xFE\xBF€",
	}
	for _, policy := range []codec.ErrorPolicy{codec.Replace, codec.Skip} {
		for _, in := range inputs {
			src := []byte(in)
			t.Run(fmt.Sprintf("%s %q", policy, in), func(t *testing.T) {
				want, err := Convert(nil, encoding.UTF16LE, src, encoding.UTF8, policy)
				require.NoError(t, err)

				for split := 0; split <= len(src); split++ {
					c, err := NewConverter(encoding.UTF8, encoding.UTF16LE, WithErrorPolicy(policy))
					require.NoError(t, err)
					got, err := feed(t, c, [][]byte{src[:split], src[split:]}, 64)
					require.NoError(t, err)
					assert.Equal(t, want, got, "split %d", split)
				}

				chunks := make([][]byte, 0, len(src)+1)
				for i := range src {
					chunks = append(chunks, src[i:i+1])
				}
				c, err := NewConverter(encoding.UTF8, encoding.UTF16LE, WithErrorPolicy(policy))
				require.NoError(t, err)
				got, err := feed(t, c, append(chunks, nil), 4)
				require.NoError(t, err)
				assert.Equal(t, want, got, "byte at a time")
			})
		}
	}
}

func TestReplaceIdempotent(t *testing.T) {
	src := []byte("ok \xC0\x80 \xED\xA0\x80 \xF0\x9F end \xE2")
	once, err := Convert(nil, encoding.UTF8, src, encoding.UTF8, codec.Replace)
	require.NoError(t, err)
	twice, err := Convert(nil, encoding.UTF8, once, encoding.UTF8, codec.Replace)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, "ok \uFFFD \uFFFD \uFFFD end \uFFFD", string(once))
}

func TestRoundTrip(t *testing.T) {
	text := "Grüße, мир! 😀"
	for _, a := range []encoding.Encoding{encoding.UTF8, encoding.UTF16LE, encoding.UTF32BE} {
		for _, b := range []encoding.Encoding{encoding.UTF16BE, encoding.UTF32LE, encoding.UTF8} {
			inA := mustEncode(t, text, a)
			inB, err := Convert(nil, b, inA, a, codec.Throw)
			require.NoError(t, err)
			back, err := Convert(nil, a, inB, b, codec.Throw)
			require.NoError(t, err)
			assert.Equal(t, inA, back, "%s<->%s", a, b)
		}
	}
}

func TestNewConverterErrors(t *testing.T) {
	_, err := NewConverter(encoding.Unknown, encoding.UTF8)
	require.Error(t, err)
	assert.Equal(t, vterrors.UnsupportedEncoding, vterrors.ErrState(err))
	assert.Contains(t, err.Error(), "source encoding")

	_, err = NewConverter(encoding.UTF8, encoding.Unknown)
	assert.Contains(t, err.Error(), "target encoding")

	_, err = NewConverter(encoding.UTF8, encoding.UTF8, WithErrorPolicy(codec.ErrorPolicy(9)))
	assert.Equal(t, vterrors.InvalidErrorPolicy, vterrors.ErrState(err))

	c, err := NewConverter(encoding.UTF8, encoding.UTF16LE, WithErrorPolicy(codec.Skip), WithStageSize(0))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, c.From())
	assert.Equal(t, encoding.UTF16LE, c.To())
	assert.Equal(t, codec.Skip, c.ErrorPolicy())
	assert.Len(t, c.stage, 1)
	assert.Equal(t, "READY", c.State().String())
}
