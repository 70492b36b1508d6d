// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import "sync"

// varTable holds the 16 odd multiples [1]P, [3]P, ..., [31]P of a point P, in
// Jacobian coordinates, used by ScalarMult and ScalarMultPublic.
type varTable [16]Point

func (t *varTable) build(p *Point) {
	t[0].Set(p)
	var twoP Point
	twoP.Double(p)
	for i := 1; i < 16; i++ {
		t[i].addJacobian(&t[i-1], &twoP)
	}
}

// ctEq returns 1 if a == b and 0 otherwise, in constant time.
func ctEq(a, b int) int {
	d := uint64(int64(a ^ b))
	return int(1 - ((d | -d) >> 63))
}

// selectPoint reads the entry at idx out of t without branching or taking a
// memory-access pattern that depends on idx.
func (t *varTable) selectPoint(idx int) Point {
	var out Point
	for i, p := range t {
		cond := ctEq(i, idx)
		out.X.Select(&p.X, &out.X, cond)
		out.Y.Select(&p.Y, &out.Y, cond)
		out.Z.Select(&p.Z, &out.Z, cond)
	}
	return out
}

// baseSubTable holds the 16 affine points [(2j+1) * 2^(20*i)]G, j in 0..15,
// for one of the 20 groups used by the fixed-base comb method.
type baseSubTable [16]AffinePoint

func (t *baseSubTable) selectPoint(idx int) AffinePoint {
	var out AffinePoint
	for i, p := range t {
		cond := ctEq(i, idx)
		out.X.Select(&p.X, &out.X, cond)
		out.Y.Select(&p.Y, &out.Y, cond)
	}
	return out
}

// baseTableGroups fixes the comb-method layout: the 77 regular-wNAF digits
// fall into 4 residue-mod-4 classes of up to 20 digits each, and digits
// 4k..4k+3 all read sub-table k, so there are 20 sub-tables of 16 points.
const baseTableGroups = 20

var (
	baseTableOnce sync.Once
	baseTable     [baseTableGroups]baseSubTable
)

// ensureBaseTable lazily builds the fixed-base comb table the first time it
// is needed, from the public generator coordinates. The construction itself
// is not constant-time or branch-free: it runs at most once per process, and
// constant-time behavior is only required for table reads during scalar
// multiplication, not for this one-time table generation. After the
// sync.Once completes, baseTable is only ever read, so it behaves as the
// immutable program constant the rest of the package assumes it is.
func ensureBaseTable() {
	baseTableOnce.Do(buildBaseTable)
}

func buildBaseTable() {
	var cur Point
	cur.SetAffine(&generatorAffine)

	for i := 0; i < baseTableGroups; i++ {
		var jac varTable
		jac.build(&cur)

		for j := 0; j < 16; j++ {
			x, y, err := jac[j].Affine()
			if err != nil {
				panic("p384: base table generation produced the point at infinity")
			}
			baseTable[i][j].X.Set(x)
			baseTable[i][j].Y.Set(y)
		}

		if i != baseTableGroups-1 {
			for k := 0; k < 20; k++ {
				cur.Double(&cur)
			}
		}
	}
}
