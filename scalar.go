// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import "errors"

// Scalar is a 384-bit unsigned integer used as a multiplier of P-384 points,
// held as a 48-byte little-endian encoding; it is not reduced modulo the
// order of the base point. The zero value is the scalar 0.
type Scalar struct {
	b [48]byte
}

// NewScalar returns a Scalar set to zero.
func NewScalar() *Scalar {
	return &Scalar{}
}

// SetBytes sets s to x, a 48-byte little-endian encoding of an integer. The
// value is used as-is: this package performs scalar recoding, not reduction,
// so callers that need a value reduced mod n must reduce it themselves.
// SetBytes returns an error if x does not have length 48.
func (s *Scalar) SetBytes(x []byte) (*Scalar, error) {
	if len(x) != 48 {
		return nil, errors.New("p384: invalid scalar length")
	}
	copy(s.b[:], x)
	return s, nil
}

// Bytes returns the 48-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, 48)
	copy(out, s.b[:])
	return out
}

func getBit(b *[48]byte, i int) int {
	if i < 0 || i >= 384 {
		return 0
	}
	return int(b[i>>3]>>uint(i&7)) & 1
}

// regularWNAF computes the regular width-5 signed-digit representation of s:
// 77 odd digits in [-31, 31], with no zero digits, satisfying
//
//	sum(d[i] * 2^(5*i)) = s + (1 - (s mod 2))
//
// This representation is "regular" in the sense that its digit count and the
// sequence of doublings and table lookups used to consume it never depend on
// s, which is what makes ScalarMult and ScalarBaseMult safe to run on secret
// scalars.
func regularWNAF(s *Scalar) [77]int8 {
	var out [77]int8

	window := int16(s.b[0]&0x3f) | 1
	for i := 0; i < 76; i++ {
		d := int8((window & 0x3f) - 32)
		out[i] = d
		window = (window - int16(d)) >> 5
		window += int16(getBit(&s.b, (i+1)*5+1)) << 1
		window += int16(getBit(&s.b, (i+1)*5+2)) << 2
		window += int16(getBit(&s.b, (i+1)*5+3)) << 3
		window += int16(getBit(&s.b, (i+1)*5+4)) << 4
		window += int16(getBit(&s.b, (i+1)*5+5)) << 5
	}
	out[76] = int8(window)

	return out
}

// textbookWNAF computes the textbook width-5 wNAF representation of s: 385
// signed digits in {0, ±1, ..., ±31}, every non-zero digit followed by at
// least four zeros, satisfying sum(d[i] * 2^i) = s.
//
// Unlike regularWNAF, the digit pattern depends on the bits of s, so this
// representation must only be used for scalars that are already public, such
// as the two scalars in an ECDSA signature verification.
func textbookWNAF(s *Scalar) [385]int8 {
	var out [385]int8

	window := int16(s.b[0] & 0x3f)
	for i := 0; i < 385; i++ {
		var d int16
		if window&1 != 0 {
			d = window & 0x3f
			if d&0x20 != 0 {
				d -= 0x40
			}
		}
		out[i] = int8(d)
		window = (window - d) >> 1
		window += int16(getBit(&s.b, i+1+5)) << 5
	}

	return out
}
