// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prng provides the 64-bit uniform source used by IntSet.Random and
// any other internal randomization the tiered containers need. The PRNG
// algorithm is treated as an external collaborator -- any uniform source
// suffices -- so this wraps math/rand/v2's PCG-backed generator rather than
// inventing one: it is already non-global-state and safe to embed
// per-container.
package prng

import "math/rand/v2"

// Source is the minimal interface the tiered containers depend on.
type Source interface {
	// Uint64 returns a uniformly distributed 64-bit value.
	Uint64() uint64

	// UintN returns a uniformly distributed value in [0, n).
	UintN(n uint64) uint64
}

type source struct {
	r *rand.Rand
}

// New returns a fresh, independently seeded Source. Each tiered container
// should own one rather than share a process-global generator, keeping the
// "no operation may be invoked concurrently on the same handle" rule from
// leaking into PRNG state races across unrelated containers.
func New() Source {
	return &source{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *source) Uint64() uint64 {
	return s.r.Uint64()
}

func (s *source) UintN(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return s.r.Uint64N(n)
}
