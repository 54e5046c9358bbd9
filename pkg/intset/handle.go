// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intset

import "github.com/ClusterCockpit/tiercore/pkg/dlog"

// Tier identifies which internal representation an IntSet currently uses.
// Tiers only ever advance: Small -> Medium -> Full.
type Tier uint8

const (
	Small Tier = iota
	Medium
	Full
)

func (t Tier) String() string {
	switch t {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// IntSet is the handle callers hold. Its zero value is not ready for use;
// construct one with New.
type IntSet struct {
	tier     Tier
	values16 []int16
	values32 []int32
	values64 []int64
}

// New returns an empty IntSet at the Small tier.
func New() *IntSet {
	return &IntSet{tier: Small}
}

// Tier reports the IntSet's current internal representation. Exposed mainly
// for tests and instrumentation; callers should never branch program logic
// on it since every operation already dispatches by tier internally.
func (s *IntSet) Tier() Tier {
	return s.tier
}

// maxWidth returns the widest value class the current tier can hold without
// a promotion.
func (s *IntSet) maxWidth() Width {
	switch s.tier {
	case Small:
		return Width16
	case Medium:
		return Width32
	default:
		return Width64
	}
}

// ensureWidth promotes the set, one tier at a time, until it can host values
// of width w. Each promotion is a one-pass hand-off: the narrower segments
// move across untouched, and the newly available widest segment starts out
// empty (the caller inserts the triggering value into it immediately
// afterwards).
func (s *IntSet) ensureWidth(w Width) {
	if w <= Width16 {
		return
	}
	if s.tier == Small && w > Width16 {
		s.tier = Medium
		// values16 carries over untouched; values32 starts empty.
	}
	if s.tier == Medium && w > Width32 {
		s.tier = Full
		// values16/values32 carry over untouched; values64 starts empty.
	}
	dlog.Assert(w <= s.maxWidth(), "intset: ensureWidth(%d) left tier %s unable to host it", w, s.tier)
}
