// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package p384

import "errors"

// ErrPointAtInfinity is returned by operations that require an affine
// representation of a Point that happens to be the point at infinity, which
// has none.
var ErrPointAtInfinity = errors.New("p384: point is the point at infinity")

// ErrInvalidEncoding is returned by CompareX when r is not a 48-byte
// encoding. The SetBytes methods of Scalar and field.Element report bad
// input with their own error values, not with ErrInvalidEncoding.
var ErrInvalidEncoding = errors.New("p384: invalid encoding")
