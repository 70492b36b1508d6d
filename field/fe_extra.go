// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

// This file contains additional functionality that is not included in the
// base wrapper around the fiat-crypto generated arithmetic.

// InvSquare sets e = in^-2 mod p and returns e. Inversion is implemented via
// Fermat's little theorem, in^(p-3) = in^-2 mod p for in != 0, following the
// addition chain for p-3 from Brian Smith's addition chain catalogue
// (https://briansmith.org/ecc-inversion-addition-chains-01#p384_field_inversion),
// the same chain used by BoringSSL's fiat_p384_inv_square.
//
// If in is zero, InvSquare returns 0, since every step of the chain is a
// squaring or a multiplication by a power of in, both of which map 0 to 0.
func (e *Element) InvSquare(in *Element) *Element {
	var x2, x3, x6, x12, x15, x30, x60, x120 Element

	x2.Square(in)
	x2.Multiply(&x2, in) // 2^2 - 1

	x3.Square(&x2)
	x3.Multiply(&x3, in) // 2^3 - 1

	x6.Square(&x3)
	for i := 1; i < 3; i++ {
		x6.Square(&x6)
	}
	x6.Multiply(&x6, &x3) // 2^6 - 1

	x12.Square(&x6)
	for i := 1; i < 6; i++ {
		x12.Square(&x12)
	}
	x12.Multiply(&x12, &x6) // 2^12 - 1

	x15.Square(&x12)
	for i := 1; i < 3; i++ {
		x15.Square(&x15)
	}
	x15.Multiply(&x15, &x3) // 2^15 - 1

	x30.Square(&x15)
	for i := 1; i < 15; i++ {
		x30.Square(&x30)
	}
	x30.Multiply(&x30, &x15) // 2^30 - 1

	x60.Square(&x30)
	for i := 1; i < 30; i++ {
		x60.Square(&x60)
	}
	x60.Multiply(&x60, &x30) // 2^60 - 1

	x120.Square(&x60)
	for i := 1; i < 60; i++ {
		x120.Square(&x120)
	}
	x120.Multiply(&x120, &x60) // 2^120 - 1

	var ret Element
	ret.Square(&x120)
	for i := 1; i < 120; i++ {
		ret.Square(&ret)
	}
	ret.Multiply(&ret, &x120) // 2^240 - 1

	for i := 0; i < 15; i++ {
		ret.Square(&ret)
	}
	ret.Multiply(&ret, &x15) // 2^255 - 1

	// One extra squaring before multiplying by x30 rather than x31 leaves
	// the bit at this position zero, matching p-3's binary expansion.
	for i := 0; i < 1+30; i++ {
		ret.Square(&ret)
	}
	ret.Multiply(&ret, &x30) // 2^286 - 2^30 - 1

	ret.Square(&ret)
	ret.Square(&ret)
	ret.Multiply(&ret, &x2) // 2^288 - 2^32 - 1

	for i := 0; i < 64+30; i++ {
		ret.Square(&ret)
	}
	ret.Multiply(&ret, &x30) // 2^382 - 2^126 - 2^94 + 2^30 - 1

	ret.Square(&ret)
	e.Square(&ret) // 2^384 - 2^128 - 2^96 + 2^32 - 2^2 = p - 3

	return e
}
