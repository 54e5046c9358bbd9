// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multiarray

import (
	"errors"

	"github.com/ClusterCockpit/tiercore/pkg/alloc"
	"github.com/ClusterCockpit/tiercore/pkg/dlog"
	"github.com/ClusterCockpit/tiercore/pkg/growth"
)

// Tier identifies which internal representation a MultiArray currently
// uses. Tiers only ever advance: Small -> Medium -> Large.
type Tier uint8

const (
	Small Tier = iota
	Medium
	Large
)

func (t Tier) String() string {
	switch t {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "unknown"
	}
}

// ErrInvalidIndex is returned when an index falls outside [0,count] (or
// [0,count) for reads/deletes).
var ErrInvalidIndex = errors.New("multiarray: index out of range")

// MultiArray is the handle callers hold. Construct one with New.
type MultiArray struct {
	elemLen int
	rowMax  int
	tier    Tier
	count   int

	alloc  alloc.Allocator
	oracle growth.Oracle

	small  smallRepr
	medium mediumRepr
	large  largeRepr
}

// New creates an empty Small-tier MultiArray whose elements are elemLen
// bytes wide. rowMax is the per-node capacity used once the set is promoted
// past Small; it also determines the Small->Medium promotion threshold.
func New(elemLen, rowMax int) *MultiArray {
	if elemLen <= 0 {
		panic("multiarray: elemLen must be positive")
	}
	if rowMax <= 0 {
		panic("multiarray: rowMax must be positive")
	}
	return &MultiArray{
		elemLen: elemLen,
		rowMax:  rowMax,
		alloc:   alloc.Default,
		oracle:  growth.New(),
	}
}

// Tier reports the MultiArray's current internal representation.
func (m *MultiArray) Tier() Tier {
	return m.tier
}

// Count returns the number of elements currently stored.
func (m *MultiArray) Count() int {
	return m.count
}

// ElemLen returns the configured element width in bytes.
func (m *MultiArray) ElemLen() int {
	return m.elemLen
}

// Bytes estimates the set's heap footprint.
func (m *MultiArray) Bytes() int {
	const headerBytes = 96
	switch m.tier {
	case Small:
		return headerBytes + cap(m.small.buf)
	case Medium:
		return headerBytes + m.medium.bytes(m.elemLen)
	default:
		return headerBytes + m.large.bytes(m.elemLen)
	}
}

// resolveIndex turns a possibly negative index (counting from the tail)
// into an absolute index in [0,limit), or returns false if it is out of
// range. limit is count for reads/deletes and count+1 for inserts (which
// also accept the one-past-the-end position).
func (m *MultiArray) resolveIndex(idx, limit int) (int, bool) {
	if idx < 0 {
		idx += limit
	}
	if idx < 0 || idx >= limit {
		return 0, false
	}
	return idx, true
}

// Get returns a copy of the element at idx (negative counts from the
// tail), or (nil, false) if idx is out of range.
func (m *MultiArray) Get(idx int) ([]byte, bool) {
	abs, ok := m.resolveIndex(idx, m.count)
	if !ok {
		return nil, false
	}
	var out []byte
	switch m.tier {
	case Small:
		out = m.small.get(abs, m.elemLen)
	case Medium:
		out = m.medium.get(abs, m.elemLen)
	default:
		out = m.large.get(abs, m.count, m.elemLen)
	}
	dlog.Assert(len(out) == m.elemLen, "multiarray: Get(%d) returned %d bytes, want %d", idx, len(out), m.elemLen)
	return out, true
}

// GetHead returns the first element, or (nil, false) if empty.
func (m *MultiArray) GetHead() ([]byte, bool) {
	return m.Get(0)
}

// GetTail returns the last element, or (nil, false) if empty.
func (m *MultiArray) GetTail() ([]byte, bool) {
	return m.Get(-1)
}

// Insert places a copy of value at position idx, shifting everything at or
// after idx one slot later. idx may be anywhere in [0,count] (or the
// equivalent negative range); it may also trigger a tier promotion. Insert
// never shrinks the set.
func (m *MultiArray) Insert(idx int, value []byte) error {
	if len(value) != m.elemLen {
		return errors.New("multiarray: value length does not match element width")
	}
	abs, ok := m.resolveIndex(idx, m.count+1)
	if !ok {
		return ErrInvalidIndex
	}

	if m.tier == Small && m.count+1 > m.rowMax {
		m.promoteSmallToMedium()
	}
	if m.tier == Medium && m.medium.directoryBytes() > m.rowMax*m.elemLen {
		m.promoteMediumToLarge()
	}

	switch m.tier {
	case Small:
		if err := m.small.insert(abs, value, m.elemLen, m.alloc, m.oracle); err != nil {
			return err
		}
	case Medium:
		m.medium.insert(abs, value, m.elemLen, m.rowMax)
	default:
		m.large.insert(abs, m.count, value, m.elemLen, m.rowMax)
	}
	m.count++
	return nil
}

// Delete removes the element at idx.
func (m *MultiArray) Delete(idx int) bool {
	abs, ok := m.resolveIndex(idx, m.count)
	if !ok {
		return false
	}
	switch m.tier {
	case Small:
		m.small.delete(abs, m.elemLen)
	case Medium:
		m.medium.delete(abs, m.elemLen)
	default:
		m.large.delete(abs, m.count, m.elemLen)
	}
	m.count--
	return true
}
