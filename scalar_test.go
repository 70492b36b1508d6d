// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import (
	"math/big"
	mathrand "math/rand"
	"reflect"
	"testing"
	"testing/quick"
)

var quickCheckConfig64 = &quick.Config{MaxCountScale: 1 << 6}

// Generate returns a Scalar with a distribution weighted toward small,
// large, and near-order values, which tend to surface windowing bugs that
// uniform random scalars rarely hit.
func (Scalar) Generate(rnd *mathrand.Rand, size int) reflect.Value {
	var b [48]byte
	switch rnd.Intn(4) {
	case 0:
		// near zero
		b[0] = byte(rnd.Intn(4))
	case 1:
		// near n, the group order
		nb := bigN.Bytes()
		for i, v := range nb {
			b[len(nb)-1-i] = v
		}
		if b[0] >= 4 {
			b[0] -= byte(rnd.Intn(4))
		}
	default:
		rnd.Read(b[:])
	}
	return reflect.ValueOf(Scalar{b: b})
}

func (s Scalar) toBig() *big.Int {
	be := make([]byte, 48)
	for i, v := range s.b {
		be[47-i] = v
	}
	return new(big.Int).SetBytes(be)
}

func bigToScalar(n *big.Int) Scalar {
	be := n.Bytes()
	var s Scalar
	for i, v := range be {
		s.b[len(be)-1-i] = v
	}
	return s
}

func TestRegularWNAFRoundTrip(t *testing.T) {
	f := func(s Scalar) bool {
		digits := regularWNAF(&s)

		total := new(big.Int)
		weight := big.NewInt(1)
		step := new(big.Int).Lsh(big.NewInt(1), 5)
		for _, d := range digits {
			term := new(big.Int).Mul(big.NewInt(int64(d)), weight)
			total.Add(total, term)
			weight.Mul(weight, step)
		}

		want := new(big.Int).Set(s.toBig())
		if want.Bit(0) == 0 {
			want.Add(want, big.NewInt(1))
		}
		return total.Cmp(want) == 0
	}
	if err := quick.Check(f, quickCheckConfig64); err != nil {
		t.Error(err)
	}
}

func TestRegularWNAFDigitsAreOddAndBounded(t *testing.T) {
	f := func(s Scalar) bool {
		for _, d := range regularWNAF(&s) {
			if d == 0 || d%2 == 0 {
				return false
			}
			if d < -31 || d > 31 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, quickCheckConfig64); err != nil {
		t.Error(err)
	}
}

func TestTextbookWNAFRoundTrip(t *testing.T) {
	f := func(s Scalar) bool {
		digits := textbookWNAF(&s)

		total := new(big.Int)
		weight := big.NewInt(1)
		for _, d := range digits {
			if d != 0 {
				term := new(big.Int).Mul(big.NewInt(int64(d)), weight)
				total.Add(total, term)
			}
			weight.Lsh(weight, 1)
		}
		return total.Cmp(s.toBig()) == 0
	}
	if err := quick.Check(f, quickCheckConfig64); err != nil {
		t.Error(err)
	}
}

func TestTextbookWNAFSparsity(t *testing.T) {
	f := func(s Scalar) bool {
		digits := textbookWNAF(&s)
		for i, d := range digits {
			if d == 0 {
				continue
			}
			for j := i + 1; j < i+5 && j < len(digits); j++ {
				if digits[j] != 0 {
					return false
				}
			}
		}
		return true
	}
	if err := quick.Check(f, quickCheckConfig64); err != nil {
		t.Error(err)
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	f := func(s Scalar) bool {
		s2, err := NewScalar().SetBytes(s.Bytes())
		if err != nil {
			return false
		}
		return *s2 == s
	}
	if err := quick.Check(f, quickCheckConfig64); err != nil {
		t.Error(err)
	}
}

func TestScalarSetBytesRejectsWrongLength(t *testing.T) {
	if _, err := NewScalar().SetBytes(make([]byte, 47)); err == nil {
		t.Error("expected an error for a 47-byte input")
	}
	if _, err := NewScalar().SetBytes(make([]byte, 49)); err == nil {
		t.Error("expected an error for a 49-byte input")
	}
}
