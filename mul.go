// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import "github.com/crypto-p384/p384/field"

// digitSign returns (isNeg, magnitude) for a regular-wNAF or wNAF digit d, in
// the same two's-complement style BoringSSL's fiat_p384 scalar multiplication
// code uses: isNeg is 1 if d is negative, and magnitude is |d|.
func digitSign(d int8) (isNeg int8, magnitude int8) {
	isNeg = (d >> 7) & 1
	magnitude = (d ^ -isNeg) + isNeg
	return isNeg, magnitude
}

// ScalarMult sets v = [s]a and returns v. It runs in constant time with
// respect to s: the sequence of field operations, table indices, and
// conditional selects it performs never depends on the value of s, only on
// its (public) length.
func (v *Point) ScalarMult(s *Scalar, a *Point) *Point {
	var table varTable
	table.build(a)

	digits := regularWNAF(s)

	msIdx := int(digits[76]) >> 1
	res := table.selectPoint(msIdx)

	for i := 75; i >= 0; i-- {
		for j := 0; j < 5; j++ {
			res.Double(&res)
		}

		isNeg, mag := digitSign(digits[i])
		idx := int(mag) >> 1
		q := table.selectPoint(idx)

		var negY field.Element
		negY.Negate(&q.Y)
		q.Y.Select(&negY, &q.Y, int(isNeg))

		res.addJacobian(&res, &q)
	}

	// s might be even, in which case the digits above encode s+1 rather
	// than s; compensate by subtracting a when that happened.
	var negA, compensated Point
	negA.Negate(a)
	compensated.addJacobian(&res, &negA)
	isEven := 1 - (int(s.b[0]) & 1)
	res.X.Select(&compensated.X, &res.X, isEven)
	res.Y.Select(&compensated.Y, &res.Y, isEven)
	res.Z.Select(&compensated.Z, &res.Z, isEven)

	v.Set(&res)
	return v
}

// ScalarBaseMult returns [s]G, where G is the P-384 base point. It runs in
// constant time with respect to s, using the fixed 20-group, 16-entry-per-
// group comb method over the precomputed base table.
func ScalarBaseMult(s *Scalar) *Point {
	ensureBaseTable()

	digits := regularWNAF(s)

	var res Point
	for g := 3; g >= 0; g-- {
		if g != 3 {
			for j := 0; j < 5; j++ {
				res.Double(&res)
			}
		}

		for j := g; j < 77; j += 4 {
			isNeg, mag := digitSign(digits[j])
			idx := int(mag) >> 1

			ap := baseTable[j/4].selectPoint(idx)
			var negY field.Element
			negY.Negate(&ap.Y)
			ap.Y.Select(&negY, &ap.Y, int(isNeg))

			res.addMixed(&res, &ap)
		}
	}

	var negG AffinePoint
	negG.Negate(&generatorAffine)
	var compensated Point
	compensated.addMixed(&res, &negG)
	isEven := 1 - (int(s.b[0]) & 1)
	res.X.Select(&compensated.X, &res.X, isEven)
	res.Y.Select(&compensated.Y, &res.Y, isEven)
	res.Z.Select(&compensated.Z, &res.Z, isEven)

	return &res
}

// ScalarMultPublic returns [sg]G + [sp]p. It is not constant-time: sg, sp,
// and p are all assumed to be public, as is the case for the two scalars and
// the public key in ECDSA signature verification, and this function takes
// advantage of that to skip doublings while the running total is still the
// point at infinity.
func ScalarMultPublic(sg, sp *Scalar, p *Point) *Point {
	ensureBaseTable()

	var table varTable
	table.build(p)

	pw := textbookWNAF(sp)
	gw := textbookWNAF(sg)

	var res Point
	resIsInf := true

	for i := 384; i >= 0; i-- {
		if !resIsInf {
			res.Double(&res)
		}

		if d := pw[i]; d != 0 {
			isNeg := d < 0
			mag := d
			if isNeg {
				mag = -mag
			}
			idx := int(mag-1) >> 1
			q := table[idx]
			if isNeg {
				q.Y.Negate(&q.Y)
			}
			if resIsInf {
				res.Set(&q)
				resIsInf = false
			} else {
				res.addJacobian(&res, &q)
			}
		}

		if d := gw[i]; d != 0 {
			isNeg := d < 0
			mag := d
			if isNeg {
				mag = -mag
			}
			idx := int(mag-1) >> 1
			ap := baseTable[0][idx]
			if isNeg {
				ap.Y.Negate(&ap.Y)
			}
			if resIsInf {
				res.SetAffine(&ap)
				resIsInf = false
			} else {
				res.addMixed(&res, &ap)
			}
		}
	}

	return &res
}
