// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intset

// segment is one width-class array presented as an int64-valued sorted
// sequence, for the purposes of the k-way merge below.
type segment struct {
	len int
	at  func(i int) int64
}

// segments returns the set's active width-class arrays, widest excluded if
// the current tier doesn't use it. Disjointness-by-width-class means these
// never need to be compared against each other for overlap, only merged by
// value.
func (s *IntSet) segments() []segment {
	segs := make([]segment, 0, 3)
	segs = append(segs, segment{len(s.values16), func(i int) int64 { return int64(s.values16[i]) }})
	if s.tier >= Medium {
		segs = append(segs, segment{len(s.values32), func(i int) int64 { return int64(s.values32[i]) }})
	}
	if s.tier >= Full {
		segs = append(segs, segment{len(s.values64), func(i int) int64 { return s.values64[i] }})
	}
	return segs
}

// kwayGet performs a virtual k-way merge for positional access: each
// segment is a sorted finger, and the pos-th element of the globally
// ordered sequence is found by repeatedly advancing the finger with the
// smallest current head. Comparison is by value, never by segment
// identity, since a 16-bit value can outrank a 32-bit one once sign is
// taken into account. k is at most 3 here, so a linear min-finger scan
// beats a heap.
func kwayGet(s *IntSet, pos int) int64 {
	segs := s.segments()
	fingers := make([]int, len(segs))

	for step := 0; ; step++ {
		minSeg := -1
		var minVal int64
		for i := range segs {
			if fingers[i] >= segs[i].len {
				continue
			}
			v := segs[i].at(fingers[i])
			if minSeg == -1 || v < minVal {
				minVal = v
				minSeg = i
			}
		}

		if step == pos {
			return minVal
		}
		fingers[minSeg]++
	}
}
