// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import (
	"encoding/hex"
	"math/big"

	"github.com/crypto-p384/p384/field"
)

// Domain parameters for NIST P-384, as specified in FIPS 186-4. These are
// public constants, not secret material; they are parsed once at init time
// from their standard big-endian hex form rather than hand-transcribed as
// little-endian byte literals, to keep the one place where a transcription
// error could hide easy to check against any other reference.
const (
	pHex  = "fffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff"
	nHex  = "ffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"
	gxHex = "aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7"
	gyHex = "3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f"
)

// leBytesFromHex decodes a big-endian hex string into its little-endian byte
// encoding, the serialization this package uses throughout for field
// elements and scalars.
func leBytesFromHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("p384: invalid constant: " + err.Error())
	}
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

var (
	bigP = mustBig(pHex)
	bigN = mustBig(nHex)

	// fieldMinusOrder is p - n, little-endian, used by CompareX. Derived via
	// math/big at init time from the two public constants above rather than
	// hand-subtracted, since a slip in a 384-bit subtraction done by hand
	// would be very easy to miss.
	fieldMinusOrder = func() []byte {
		d := new(big.Int).Sub(bigP, bigN)
		be := d.Bytes()
		out := make([]byte, 48)
		for i, v := range be {
			out[len(be)-1-i] = v
		}
		return out
	}()
)

func mustBig(hexStr string) *big.Int {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic("p384: invalid constant hex string")
	}
	return n
}

// orderElement is the group order n, as a field.Element in Montgomery form,
// used by CompareX's r+n candidate. It is smaller than p, so it is a valid
// field.Element even though it isn't itself a field element semantically.
var orderElement = func() field.Element {
	var e field.Element
	if _, err := e.SetBytes(leBytesFromHex(nHex)); err != nil {
		panic("p384: failed to encode the group order: " + err.Error())
	}
	return e
}()

// generatorAffine is the NIST P-384 base point G.
var generatorAffine = func() AffinePoint {
	var a AffinePoint
	if _, err := a.X.SetBytes(leBytesFromHex(gxHex)); err != nil {
		panic("p384: failed to encode the generator x-coordinate: " + err.Error())
	}
	if _, err := a.Y.SetBytes(leBytesFromHex(gyHex)); err != nil {
		panic("p384: failed to encode the generator y-coordinate: " + err.Error())
	}
	return a
}()
