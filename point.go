// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package p384 implements constant-time scalar multiplication on NIST P-384,
// the short Weierstrass curve
//
//     y^2 = x^3 - 3x + b
//
// using Jacobian coordinates. Field arithmetic is delegated to the field
// subpackage, which wraps formally verified code generated by fiat-crypto.
//
// Most users don't need this package directly; it is the arithmetic core
// underneath higher level ECDH and ECDSA implementations, not a complete
// public-key cryptosystem on its own.
package p384

import "github.com/crypto-p384/p384/field"

// Point is a NIST P-384 group element in Jacobian coordinates (X, Y, Z),
// representing the affine point (X/Z^2, Y/Z^3). The zero value is the point
// at infinity.
type Point struct {
	X, Y, Z field.Element
}

// AffinePoint is a NIST P-384 group element in affine coordinates. Unlike
// Point, it has no representation for the point at infinity; every
// AffinePoint produced by this package is a genuine curve point.
type AffinePoint struct {
	X, Y field.Element
}

// NewPoint returns a new Point set to the point at infinity.
func NewPoint() *Point {
	return &Point{}
}

// Set sets v = a and returns v.
func (v *Point) Set(a *Point) *Point {
	*v = *a
	return v
}

// SetAffine sets v to the Jacobian representation of a and returns v.
func (v *Point) SetAffine(a *AffinePoint) *Point {
	v.X.Set(&a.X)
	v.Y.Set(&a.Y)
	v.Z.One()
	return v
}

// Negate sets v = -a and returns v.
func (v *Point) Negate(a *Point) *Point {
	v.X.Set(&a.X)
	v.Y.Negate(&a.Y)
	v.Z.Set(&a.Z)
	return v
}

// Negate sets v = -a and returns v.
func (v *AffinePoint) Negate(a *AffinePoint) *AffinePoint {
	v.X.Set(&a.X)
	v.Y.Negate(&a.Y)
	return v
}

// Affine returns the affine x, y coordinates of p. It returns
// ErrPointAtInfinity if p is the point at infinity.
func (p *Point) Affine() (x, y *field.Element, err error) {
	if p.Z.IsNonZero() == 0 {
		return nil, nil, ErrPointAtInfinity
	}

	var zInv2, zInv4 field.Element
	zInv2.InvSquare(&p.Z)
	zInv4.Square(&zInv2)

	x = new(field.Element).Multiply(&p.X, &zInv2)
	y = new(field.Element).Multiply(&p.Y, &p.Z)
	y.Multiply(y, &zInv4)
	return x, y, nil
}

// Double sets v = 2*a, using the "dbl-2001-b" formula, and returns v. It is
// valid for v and a to alias.
func (v *Point) Double(a *Point) *Point {
	var delta, gamma, beta, ftmp, ftmp2, tmp, alpha field.Element

	delta.Square(&a.Z)
	gamma.Square(&a.Y)
	beta.Multiply(&a.X, &gamma)

	ftmp.Subtract(&a.X, &delta)
	ftmp2.Add(&a.X, &delta)
	tmp.Add(&ftmp2, &ftmp2)
	ftmp2.Add(&ftmp2, &tmp)
	alpha.Multiply(&ftmp, &ftmp2)

	var fourBeta, xOut, yOut, zOut field.Element
	xOut.Square(&alpha)
	fourBeta.Add(&beta, &beta)
	fourBeta.Add(&fourBeta, &fourBeta)
	tmp.Add(&fourBeta, &fourBeta)
	xOut.Subtract(&xOut, &tmp)

	ftmp.Add(&a.Y, &a.Z)
	zOut.Square(&ftmp)
	zOut.Subtract(&zOut, &gamma)
	zOut.Subtract(&zOut, &delta)

	yOut.Subtract(&fourBeta, &xOut)
	gamma.Add(&gamma, &gamma)
	gamma.Square(&gamma)
	yOut.Multiply(&alpha, &yOut)
	gamma.Add(&gamma, &gamma)
	yOut.Subtract(&yOut, &gamma)

	v.X.Set(&xOut)
	v.Y.Set(&yOut)
	v.Z.Set(&zOut)
	return v
}

// Add sets v = a + b, using the general (non-mixed) "add-2007-bl" formula,
// and returns v. This is the public point_add_generic API: it handles a or b
// being the point at infinity with constant-time selects, and handles a == b
// by branching to Double, so that one case is not constant-time.
func (v *Point) Add(a, b *Point) *Point {
	return v.addJacobian(a, b)
}

func (v *Point) addJacobian(a, b *Point) *Point {
	return v.addCore(a, &b.X, &b.Y, &b.Z, false)
}

// addMixed sets v = a + b, where b is given in affine coordinates (so its Z
// coordinate is implicitly one), and returns v.
func (v *Point) addMixed(a *Point, b *AffinePoint) *Point {
	var one field.Element
	one.One()
	return v.addCore(a, &b.X, &b.Y, &one, true)
}

// addCore implements both add-2007-bl (mixed == false) and its mixed-input
// specialization (mixed == true, with z2 assumed to be one), sharing the
// exceptional-case handling and constant-time selects between them. v may
// alias a or any of bx, by, bz.
func (v *Point) addCore(a *Point, bx, by, bz *field.Element, mixed bool) *Point {
	var aX, aY, aZ, bX, bY, bZ field.Element
	aX.Set(&a.X)
	aY.Set(&a.Y)
	aZ.Set(&a.Z)
	bX.Set(bx)
	bY.Set(by)
	bZ.Set(bz)

	z1nz := aZ.IsNonZero()
	z2nz := bZ.IsNonZero()

	var z1z1 field.Element
	z1z1.Square(&aZ)

	var u1, s1, twoZ1Z2 field.Element
	if !mixed {
		var z2z2 field.Element
		z2z2.Square(&bZ)
		u1.Multiply(&aX, &z2z2)

		twoZ1Z2.Add(&aZ, &bZ)
		twoZ1Z2.Square(&twoZ1Z2)
		twoZ1Z2.Subtract(&twoZ1Z2, &z1z1)
		twoZ1Z2.Subtract(&twoZ1Z2, &z2z2)

		s1.Multiply(&bZ, &z2z2)
		s1.Multiply(&s1, &aY)
	} else {
		u1.Set(&aX)
		twoZ1Z2.Add(&aZ, &aZ)
		s1.Set(&aY)
	}

	var u2 field.Element
	u2.Multiply(&bX, &z1z1)

	var h field.Element
	h.Subtract(&u2, &u1)
	xneq := h.IsNonZero()

	var zOut field.Element
	zOut.Multiply(&h, &twoZ1Z2)

	var z1z1z1 field.Element
	z1z1z1.Multiply(&aZ, &z1z1)

	var s2 field.Element
	s2.Multiply(&bY, &z1z1z1)

	var r field.Element
	r.Subtract(&s2, &s1)
	r.Add(&r, &r)
	yneq := r.IsNonZero()

	if xneq == 0 && yneq == 0 && z1nz != 0 && z2nz != 0 {
		// a == b: the general addition formula degenerates at equal inputs,
		// so fall back to doubling. This never happens on a secret-scalar
		// path because the regular-wNAF windowing guarantees the two
		// operands of every addCore call inside ScalarMult are distinct.
		return v.Double(a)
	}

	var ii, jj, vv, xOut, yOut field.Element
	ii.Add(&h, &h)
	ii.Square(&ii)
	jj.Multiply(&h, &ii)
	vv.Multiply(&u1, &ii)

	xOut.Square(&r)
	xOut.Subtract(&xOut, &jj)
	xOut.Subtract(&xOut, &vv)
	xOut.Subtract(&xOut, &vv)

	var s1j field.Element
	yOut.Subtract(&vv, &xOut)
	yOut.Multiply(&yOut, &r)
	s1j.Multiply(&s1, &jj)
	yOut.Subtract(&yOut, &s1j)
	yOut.Subtract(&yOut, &s1j)

	// If a is the point at infinity, the result is b; if b is the point at
	// infinity, the result is a; otherwise it's the general formula above.
	// Both selections must be evaluated unconditionally since z1nz/z2nz are
	// secret when either scalar multiplicand is secret.
	z1Zero := 1 - z1nz
	z2Zero := 1 - z2nz

	var xSel, ySel, zSel field.Element
	xSel.Select(&bX, &xOut, z1Zero)
	v.X.Select(&aX, &xSel, z2Zero)
	ySel.Select(&bY, &yOut, z1Zero)
	v.Y.Select(&aY, &ySel, z2Zero)
	zSel.Select(&bZ, &zOut, z1Zero)
	v.Z.Select(&aZ, &zSel, z2Zero)
	return v
}

// CompareX reports whether the affine x-coordinate of p, reduced mod n,
// equals r. r is the 48-byte little-endian encoding of a value already
// reduced mod n, as found in the r component of an ECDSA signature. It
// returns false if p is the point at infinity.
func (p *Point) CompareX(r []byte) (bool, error) {
	if len(r) != 48 {
		return false, ErrInvalidEncoding
	}
	if p.Z.IsNonZero() == 0 {
		return false, nil
	}

	var rElem field.Element
	if _, err := rElem.SetBytes(r); err != nil {
		return false, err
	}

	var z2, rz2 field.Element
	z2.Square(&p.Z)
	rz2.Multiply(&rElem, &z2)
	if rz2.Equal(&p.X) == 1 {
		return true, nil
	}

	if field.LessBytes(r, fieldMinusOrder) {
		var rPlusN field.Element
		rPlusN.Add(&rElem, &orderElement)
		rz2.Multiply(&rPlusN, &z2)
		if rz2.Equal(&p.X) == 1 {
			return true, nil
		}
	}
	return false, nil
}
