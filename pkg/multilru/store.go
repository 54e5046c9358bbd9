// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import (
	"github.com/ClusterCockpit/tiercore/pkg/bitpack"
	"github.com/ClusterCockpit/tiercore/pkg/dlog"
	"github.com/ClusterCockpit/tiercore/pkg/growth"
)

// store is the flat, bit-packed entry array plus the optional parallel
// weights array. It knows nothing about levels, policies, or eviction --
// only how to address and grow slots.
type store struct {
	width    int
	layout   fieldLayout
	data     []byte
	weights  []uint64 // nil unless weight tracking is enabled
	capacity uint64   // number of slots currently addressable (len(data)/width)
	oracle   growth.Oracle
}

func newStore(capacity uint64, withWeights bool, oracle growth.Oracle) *store {
	t := selectWidth(capacity)
	s := &store{
		width:    t.width,
		layout:   layoutFor(t.width),
		data:     make([]byte, capacity*uint64(t.width)),
		capacity: capacity,
		oracle:   oracle,
	}
	if withWeights {
		s.weights = make([]uint64, capacity)
	}
	return s
}

func (s *store) slot(id uint64) []byte {
	off := id * uint64(s.width)
	return s.data[off : off+uint64(s.width)]
}

func (s *store) getPrev(id uint64) uint64 {
	return bitpack.Get(s.slot(id), s.layout.prevOff, s.layout.addrBits)
}

func (s *store) setPrev(id, v uint64) {
	bitpack.Set(s.slot(id), s.layout.prevOff, s.layout.addrBits, v)
}

func (s *store) getNext(id uint64) uint64 {
	return bitpack.Get(s.slot(id), s.layout.nextOff, s.layout.addrBits)
}

func (s *store) setNext(id, v uint64) {
	bitpack.Set(s.slot(id), s.layout.nextOff, s.layout.addrBits, v)
}

func (s *store) getLevel(id uint64) int {
	return int(bitpack.Get(s.slot(id), s.layout.levelOff, 6))
}

func (s *store) setLevel(id uint64, level int) {
	bitpack.Set(s.slot(id), s.layout.levelOff, 6, uint64(level))
}

func (s *store) isPopulated(id uint64) bool {
	return bitpack.Get(s.slot(id), s.layout.populatedOff, 1) != 0
}

func (s *store) setPopulated(id uint64, v bool) {
	var b uint64
	if v {
		b = 1
	}
	bitpack.Set(s.slot(id), s.layout.populatedOff, 1, b)
}

func (s *store) isHead(id uint64) bool {
	return bitpack.Get(s.slot(id), s.layout.headOff, 1) != 0
}

func (s *store) setIsHead(id uint64, v bool) {
	var b uint64
	if v {
		b = 1
	}
	bitpack.Set(s.slot(id), s.layout.headOff, 1, b)
}

func (s *store) getWeight(id uint64) uint64 {
	if s.weights == nil {
		return 0
	}
	return s.weights[id]
}

func (s *store) setWeight(id, w uint64) {
	if s.weights != nil {
		s.weights[id] = w
	}
}

// grow asks the growth oracle for the next byte size and, if that pushes
// capacity past the current width tier's addressable maximum, first
// upgrades the width (reading every existing slot at the old width and
// rewriting it at the new one) before recomputing capacity. Growth of the
// entry array is O(1) amortized: new slots become reachable purely by
// advancing nextFresh, never by being pushed through the free list.
func (s *store) grow() {
	curBytes := len(s.data)
	nextBytes := s.oracle.RoundToAllocatorClass(s.oracle.NextSize(curBytes))
	newCap := uint64(nextBytes) / uint64(s.width)
	if newCap <= s.capacity {
		newCap = s.capacity + 1
	}

	if maxSlotID(s.layout.addrBits) < newCap {
		s.upgradeWidth(newCap)
		return
	}

	newData := make([]byte, newCap*uint64(s.width))
	copy(newData, s.data)
	s.data = newData
	s.capacity = newCap

	if s.weights != nil {
		grown := make([]uint64, newCap)
		copy(grown, s.weights)
		s.weights = grown
	}
}

// upgradeWidth reallocates the flat array at a wider tier and transcribes
// every slot's five fields verbatim; content (prev, next, level, populated,
// isHead) is preserved exactly, only the encoding changes.
func (s *store) upgradeWidth(minCap uint64) {
	t := selectWidth(minCap)
	dlog.Assert(t.width > s.width, "multilru: upgradeWidth called without a wider tier available")

	newLayout := layoutFor(t.width)
	newData := make([]byte, minCap*uint64(t.width))

	oldWidth := s.width
	oldLayout := s.layout
	oldData := s.data

	readSlot := func(id uint64) []byte {
		off := id * uint64(oldWidth)
		return oldData[off : off+uint64(oldWidth)]
	}
	writeSlot := func(id uint64) []byte {
		off := id * uint64(t.width)
		return newData[off : off+uint64(t.width)]
	}

	for id := uint64(0); id < s.capacity; id++ {
		old := readSlot(id)
		fresh := writeSlot(id)
		prev := bitpack.Get(old, oldLayout.prevOff, oldLayout.addrBits)
		next := bitpack.Get(old, oldLayout.nextOff, oldLayout.addrBits)
		level := bitpack.Get(old, oldLayout.levelOff, 6)
		populated := bitpack.Get(old, oldLayout.populatedOff, 1)
		head := bitpack.Get(old, oldLayout.headOff, 1)

		bitpack.Set(fresh, newLayout.prevOff, newLayout.addrBits, prev)
		bitpack.Set(fresh, newLayout.nextOff, newLayout.addrBits, next)
		bitpack.Set(fresh, newLayout.levelOff, 6, level)
		bitpack.Set(fresh, newLayout.populatedOff, 1, populated)
		bitpack.Set(fresh, newLayout.headOff, 1, head)
	}

	s.width = t.width
	s.layout = newLayout
	s.data = newData
	s.capacity = minCap

	if s.weights != nil {
		grown := make([]uint64, minCap)
		copy(grown, s.weights)
		s.weights = grown
	}
}
