// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intset

import "math"

// Width is the storage width a value requires, in bits.
type Width uint8

const (
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// classify returns the narrowest of {16,32,64} bits whose signed range
// contains v.
func classify(v int64) Width {
	switch {
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Width16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Width32
	default:
		return Width64
	}
}
