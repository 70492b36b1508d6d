// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements the GF(p) arithmetic for the base field of NIST
// P-384, where p = 2^384 - 2^128 - 2^96 + 2^32 - 1.
//
// All the heavy lifting (multiplication, squaring, addition, negation, and
// the Montgomery domain conversions) is delegated to the formally verified
// code generated by mit-plv/fiat-crypto. This package is a thin, constant-
// time wrapper that keeps every Element permanently in Montgomery form, the
// representation callers need for point arithmetic.
package field

import (
	"crypto/subtle"
	"errors"
	"math/bits"

	fiat "github.com/mit-plv/fiat-crypto/fiat-go/64/p384"
)

// Element is an element of the base field of NIST P-384, represented in
// Montgomery form. The zero value is a valid representation of zero.
type Element struct {
	limbs fiat.MontgomeryDomainFieldElement
}

// pLimbs holds p, the field modulus, as little-endian 64-bit limbs, the same
// representation fiat-crypto uses for a NonMontgomeryDomainFieldElement.
var pLimbs = [6]uint64{
	0x00000000ffffffff,
	0xffffffff00000000,
	0xfffffffffffffffe,
	0xffffffffffffffff,
	0xffffffffffffffff,
	0xffffffffffffffff,
}

var feZero Element
var feOne Element

func init() {
	b := make([]byte, 48)
	b[0] = 1
	if _, err := feOne.SetBytes(b); err != nil {
		panic("field: failed to construct the Montgomery encoding of one: " + err.Error())
	}
}

// Zero sets e = 0 and returns e.
func (e *Element) Zero() *Element {
	*e = feZero
	return e
}

// One sets e = 1 and returns e.
func (e *Element) One() *Element {
	*e = feOne
	return e
}

// Set sets e = a and returns e.
func (e *Element) Set(a *Element) *Element {
	*e = *a
	return e
}

// Add sets e = a + b mod p and returns e.
func (e *Element) Add(a, b *Element) *Element {
	fiat.Add(&e.limbs, &a.limbs, &b.limbs)
	return e
}

// Subtract sets e = a - b mod p and returns e.
func (e *Element) Subtract(a, b *Element) *Element {
	fiat.Sub(&e.limbs, &a.limbs, &b.limbs)
	return e
}

// Negate sets e = -a mod p and returns e.
func (e *Element) Negate(a *Element) *Element {
	fiat.Opp(&e.limbs, &a.limbs)
	return e
}

// Multiply sets e = a * b mod p and returns e.
func (e *Element) Multiply(a, b *Element) *Element {
	fiat.Mul(&e.limbs, &a.limbs, &b.limbs)
	return e
}

// Square sets e = a * a mod p and returns e.
func (e *Element) Square(a *Element) *Element {
	fiat.Square(&e.limbs, &a.limbs)
	return e
}

// SetBytes sets e to the value of x, a 48-byte little-endian encoding of an
// unsigned integer strictly less than p. If x does not have the right length
// or encodes a value greater than or equal to p, SetBytes returns nil and an
// error, and the receiver is unchanged.
func (e *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 48 {
		return nil, errors.New("field: invalid field element input size")
	}
	var in [48]byte
	copy(in[:], x)

	var nm fiat.NonMontgomeryDomainFieldElement
	fiat.FromBytes(&nm, &in)
	if !limbsLess((*[6]uint64)(&nm), &pLimbs) {
		return nil, errors.New("field: invalid field element encoding")
	}

	fiat.ToMontgomery(&e.limbs, &nm)
	return e, nil
}

// Bytes returns the canonical 48-byte little-endian encoding of e.
func (e *Element) Bytes() []byte {
	var nm fiat.NonMontgomeryDomainFieldElement
	fiat.FromMontgomery(&nm, &e.limbs)
	var out [48]byte
	fiat.ToBytes(&out, &nm)
	return out[:]
}

// Equal returns 1 if e == a, and 0 otherwise.
func (e *Element) Equal(a *Element) int {
	return subtle.ConstantTimeCompare(e.Bytes(), a.Bytes())
}

// IsNonZero returns 1 if e != 0, and 0 otherwise.
//
// Non-zeroness is computed directly from the limbs with branch-free masking
// rather than through fiat.Nonzero.
func (e *Element) IsNonZero() int {
	var acc uint64
	for _, w := range e.limbs {
		acc |= w
	}
	return int((acc | -acc) >> 63)
}

// mask64 returns a 64-bit mask that is all ones if cond == 1, and all zeros
// if cond == 0. The behavior is undefined if cond takes any other value.
func mask64(cond int) uint64 {
	return ^(uint64(cond) - 1)
}

// Select sets e to a if cond == 1, and to b if cond == 0.
//
// Like IsNonZero, this masks the limbs directly rather than calling
// fiat.Selectznz.
func (e *Element) Select(a, b *Element, cond int) *Element {
	m := mask64(cond)
	for i := range e.limbs {
		e.limbs[i] = (m & a.limbs[i]) | (^m & b.limbs[i])
	}
	return e
}

// Swap swaps the values of e and a if cond == 1, and leaves them unchanged
// if cond == 0.
func Swap(e, a *Element, cond int) {
	m := mask64(cond)
	for i := range e.limbs {
		t := m & (e.limbs[i] ^ a.limbs[i])
		e.limbs[i] ^= t
		a.limbs[i] ^= t
	}
}

// limbsLess reports whether a < b, interpreting both as unsigned 384-bit
// integers in little-endian limb order.
func limbsLess(a, b *[6]uint64) bool {
	var borrow uint64
	for i := 0; i < 6; i++ {
		_, borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow != 0
}

// LessBytes reports whether a < b, interpreting both as 48-byte little-endian
// unsigned integers. It panics if a or b does not have length 48; callers
// only ever pass fixed-size encodings, never attacker-controlled lengths.
func LessBytes(a, b []byte) bool {
	if len(a) != 48 || len(b) != 48 {
		panic("field: LessBytes requires 48-byte inputs")
	}
	var la, lb [6]uint64
	for i := 0; i < 6; i++ {
		la[i] = leUint64(a[i*8 : i*8+8])
		lb[i] = leUint64(b[i*8 : i*8+8])
	}
	return limbsLess(&la, &lb)
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
