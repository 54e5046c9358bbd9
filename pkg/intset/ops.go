// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intset

import (
	"github.com/ClusterCockpit/tiercore/pkg/dlog"
	"github.com/ClusterCockpit/tiercore/pkg/prng"
)

// Add inserts v, returning false iff it was already present. Add may
// promote the set's tier; that promotion is entirely internal to the
// receiver, so callers never need to re-fetch a handle.
func (s *IntSet) Add(v int64) bool {
	w := classify(v)
	s.ensureWidth(w)

	switch w {
	case Width16:
		v16 := int16(v)
		idx, found := search(s.values16, v16)
		if found {
			return false
		}
		s.values16 = insertAt(s.values16, idx, v16)
	case Width32:
		v32 := int32(v)
		idx, found := search(s.values32, v32)
		if found {
			return false
		}
		s.values32 = insertAt(s.values32, idx, v32)
	default:
		idx, found := search(s.values64, v)
		if found {
			return false
		}
		s.values64 = insertAt(s.values64, idx, v)
	}
	return true
}

// Remove deletes v, returning false iff it was absent. Remove never demotes
// the set's tier even if this empties the widest segment.
func (s *IntSet) Remove(v int64) bool {
	w := classify(v)
	if w > s.maxWidth() {
		// v cannot possibly be present: no segment wide enough exists.
		return false
	}

	switch w {
	case Width16:
		idx, found := search(s.values16, int16(v))
		if !found {
			return false
		}
		s.values16 = removeAt(s.values16, idx)
	case Width32:
		idx, found := search(s.values32, int32(v))
		if !found {
			return false
		}
		s.values32 = removeAt(s.values32, idx)
	default:
		idx, found := search(s.values64, v)
		if !found {
			return false
		}
		s.values64 = removeAt(s.values64, idx)
	}
	return true
}

// Contains reports whether v is a member. Values wider than the current
// tier's maximum are rejected in O(1) without a search.
func (s *IntSet) Contains(v int64) bool {
	w := classify(v)
	if w > s.maxWidth() {
		return false
	}

	switch w {
	case Width16:
		_, found := search(s.values16, int16(v))
		return found
	case Width32:
		_, found := search(s.values32, int32(v))
		return found
	default:
		_, found := search(s.values64, v)
		return found
	}
}

// Count returns the number of elements across all segments.
func (s *IntSet) Count() int {
	return len(s.values16) + len(s.values32) + len(s.values64)
}

// Get returns the pos-th element (0-based) of the single ascending sequence
// formed by merging all active segments, or (0, false) if pos is out of
// range.
func (s *IntSet) Get(pos int) (int64, bool) {
	if pos < 0 || pos >= s.Count() {
		return 0, false
	}
	v := kwayGet(s, pos)
	if pos > 0 {
		dlog.Assert(kwayGet(s, pos-1) < v, "intset: Get(%d) broke ascending order", pos)
	}
	return v, true
}

// Random returns a uniformly chosen element. It is undefined (panics) on an
// empty set.
func (s *IntSet) Random(src prng.Source) int64 {
	n := s.Count()
	if n == 0 {
		panic("intset: Random called on empty set")
	}
	pos := int(src.UintN(uint64(n)))
	v, _ := s.Get(pos)
	return v
}

// Bytes estimates the set's heap footprint: the capacity of each active
// backing array times its element width, plus the struct header.
func (s *IntSet) Bytes() int {
	const headerBytes = 64
	return headerBytes + cap(s.values16)*2 + cap(s.values32)*4 + cap(s.values64)*8
}
