// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"bytes"
	"math/big"
	mathrand "math/rand"
	"reflect"
	"testing"
	"testing/quick"
)

var quickCheckConfig1024 = &quick.Config{MaxCountScale: 1 << 10}

var bigP, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffe"+
		"ffffffff0000000000000000ffffffff", 16)

func generateElement(rnd *mathrand.Rand) Element {
	var b [48]byte
	for {
		if _, err := rnd.Read(b[:]); err != nil {
			panic(err)
		}
		var e Element
		if _, err := e.SetBytes(b[:]); err == nil {
			return e
		}
	}
}

func (Element) Generate(rnd *mathrand.Rand, size int) reflect.Value {
	return reflect.ValueOf(generateElement(rnd))
}

func (e Element) toBig() *big.Int {
	return new(big.Int).SetBytes(swapEndianness(e.Bytes()))
}

func swapEndianness(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func TestSetBytesRoundTrip(t *testing.T) {
	roundTrips := func(e Element) bool {
		b := e.Bytes()
		var e2 Element
		if _, err := e2.SetBytes(b); err != nil {
			return false
		}
		return e.Equal(&e2) == 1 && bytes.Equal(b, e2.Bytes())
	}
	if err := quick.Check(roundTrips, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestSetBytesRejectsOutOfRange(t *testing.T) {
	var p [48]byte
	copy(p[:], swapEndianness(bigP.Bytes()))
	var e Element
	if _, err := e.SetBytes(p[:]); err == nil {
		t.Error("SetBytes accepted p itself, expected an error")
	}
	if _, err := e.SetBytes(p[:47]); err == nil {
		t.Error("SetBytes accepted a short input, expected an error")
	}
}

func TestAddMatchesBig(t *testing.T) {
	addMatches := func(a, b Element) bool {
		var got Element
		got.Add(&a, &b)

		want := new(big.Int).Add(a.toBig(), b.toBig())
		want.Mod(want, bigP)

		return got.toBig().Cmp(want) == 0
	}
	if err := quick.Check(addMatches, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestMultiplyDistributesOverAdd(t *testing.T) {
	distributes := func(x, y, z Element) bool {
		var t1 Element
		t1.Add(&x, &y)
		t1.Multiply(&t1, &z)

		var t2, t3 Element
		t2.Multiply(&x, &z)
		t3.Multiply(&y, &z)
		t2.Add(&t2, &t3)

		return t1.Equal(&t2) == 1
	}
	if err := quick.Check(distributes, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestSquareMatchesMultiply(t *testing.T) {
	squareMatches := func(a Element) bool {
		var s, m Element
		s.Square(&a)
		m.Multiply(&a, &a)
		return s.Equal(&m) == 1
	}
	if err := quick.Check(squareMatches, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestNegateMatchesBig(t *testing.T) {
	negateMatches := func(a Element) bool {
		var got Element
		got.Negate(&a)

		want := new(big.Int).Neg(a.toBig())
		want.Mod(want, bigP)

		return got.toBig().Cmp(want) == 0
	}
	if err := quick.Check(negateMatches, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestSelectAndSwap(t *testing.T) {
	selectAndSwap := func(a, b Element) bool {
		var sel0, sel1 Element
		sel0.Select(&a, &b, 0)
		sel1.Select(&a, &b, 1)
		if sel0.Equal(&b) != 1 || sel1.Equal(&a) != 1 {
			return false
		}

		x, y := a, b
		Swap(&x, &y, 0)
		if x.Equal(&a) != 1 || y.Equal(&b) != 1 {
			return false
		}
		Swap(&x, &y, 1)
		return x.Equal(&b) == 1 && y.Equal(&a) == 1
	}
	if err := quick.Check(selectAndSwap, quickCheckConfig1024); err != nil {
		t.Error(err)
	}
}

func TestIsNonZero(t *testing.T) {
	var zero Element
	if zero.IsNonZero() != 0 {
		t.Error("the zero value reported itself as non-zero")
	}
	one := new(Element).One()
	if one.IsNonZero() != 1 {
		t.Error("one reported itself as zero")
	}
}
