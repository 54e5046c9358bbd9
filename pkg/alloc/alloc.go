// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package alloc wraps the process-wide allocator behind a narrow
// {alloc, realloc, free} interface. On top of Go's garbage collector this
// is mostly bookkeeping: the real value of the wrapper is giving every tier
// a single choke point that reports allocation failure as a value instead
// of a panic, and a single place to swap in an arena/pool allocator later
// without touching tier code.
package alloc

import "errors"

// ErrOutOfMemory is returned by an Allocator's Alloc or Realloc when a
// requested allocation cannot be satisfied. The default Allocator returns it
// only for a negative size (Go's allocator panics instead of failing
// softly), but a bounded or arena-backed Allocator used in constrained
// environments can also return it when its budget is exhausted.
var ErrOutOfMemory = errors.New("alloc: allocation failed")

// Allocator is the external collaborator the tiered containers depend on.
// All three cores only ever allocate flat byte buffers; there is
// deliberately no typed allocation API.
type Allocator interface {
	// Alloc returns a zeroed buffer of exactly n bytes, or ErrOutOfMemory.
	Alloc(n int) ([]byte, error)

	// Realloc grows or shrinks buf to exactly n bytes, preserving the
	// shared prefix, or ErrOutOfMemory (in which case buf is returned
	// unchanged).
	Realloc(buf []byte, n int) ([]byte, error)

	// Free releases buf. The default allocator relies on the GC and treats
	// this as a no-op hint; arena-backed allocators can recycle eagerly.
	Free(buf []byte)
}

// goAllocator is the default Allocator, backed directly by the Go runtime's
// allocator and garbage collector. Apart from rejecting a negative size it
// never fails: make()/append() panic on true exhaustion rather than
// returning an error. Allocator implementations that enforce a budget (see
// NewBounded) return ErrOutOfMemory when it is exceeded.
type goAllocator struct{}

// Default is the process-wide Allocator used by every tier unless a
// container is explicitly constructed with a different one.
var Default Allocator = goAllocator{}

func (goAllocator) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrOutOfMemory
	}
	return make([]byte, n), nil
}

func (goAllocator) Realloc(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return buf, ErrOutOfMemory
	}
	grown := make([]byte, n)
	copy(grown, buf)
	return grown, nil
}

func (goAllocator) Free(buf []byte) {}

// Bounded is an Allocator that fails once a configured byte budget would be
// exceeded. Useful for exercising allocation-failure paths in tests, since
// the default GC-backed allocator never fails.
type Bounded struct {
	Budget int
	used   int
}

func NewBounded(budget int) *Bounded {
	return &Bounded{Budget: budget}
}

func (b *Bounded) Alloc(n int) ([]byte, error) {
	if n < 0 || b.used+n > b.Budget {
		return nil, ErrOutOfMemory
	}
	b.used += n
	return make([]byte, n), nil
}

func (b *Bounded) Realloc(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return buf, ErrOutOfMemory
	}
	delta := n - len(buf)
	if b.used+delta > b.Budget {
		return buf, ErrOutOfMemory
	}
	grown := make([]byte, n)
	copy(grown, buf)
	b.used += delta
	return grown, nil
}

func (b *Bounded) Free(buf []byte) {
	b.used -= len(buf)
	if b.used < 0 {
		b.used = 0
	}
}
