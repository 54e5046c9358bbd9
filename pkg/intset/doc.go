// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package intset implements a sorted set of 64-bit signed integers whose
// per-element storage width is chosen to fit the widest element currently
// held.
//
// # Tiers
//
// An IntSet starts as Small: a single sorted array of int16. The moment a
// value outside the int16 range is added, it is promoted to Medium: two
// segregated sorted arrays, one of int16 and one of int32, partitioned by
// the width each value actually needs. A value outside int32 promotes
// Medium to Full, which adds a third segregated int64 array. Promotion
// never runs backwards: once an IntSet reaches Full it stays there even if
// every wide value is later removed.
//
//	Small:  [int16...]
//	Medium: [int16...] [int32...]
//	Full:   [int16...] [int32...] [int64...]
//
// Each segment is individually sorted and disjoint from the others (a
// value's width class determines which segment can possibly hold it, so
// membership never needs to be checked in more than one segment). Because
// width classification is about range, not magnitude, a value sitting in
// the int16 segment can be numerically larger than one sitting in the int32
// segment -- callers must never assume segment order implies value order.
//
// # Handle
//
// An IntSet is conceptually a pointer-sized "tier-tagged handle" that
// mutating operations may rewrite across a tier promotion. Go's equivalent
// of that discipline is a pointer receiver whose fields get swapped in
// place: *IntSet is the handle, Tier() reports which representation is
// live, and Add/Remove run entirely through methods on *IntSet so a
// promotion is invisible to the caller beyond Tier() changing. There is
// deliberately no separate exported "small/medium/full" type -- one struct
// carries all three segments, nil until its tier starts using them, mirroring
// the discriminated-pointer-to-variant design without needing unsafe.Pointer
// tag bits.
//
// # Positional access
//
// Get(pos) presents the three (or fewer) segments as one globally sorted
// sequence via a k-way merge keyed on value, not on segment identity; see
// merge.go.
package intset
