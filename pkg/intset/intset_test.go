// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package intset

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClusterCockpit/tiercore/pkg/prng"
)

func TestTierStaircase(t *testing.T) {
	s := New()

	added := s.Add(32)
	require.True(t, added)
	assert.Equal(t, Small, s.Tier())
	assert.Equal(t, 1, s.Count())
	v, ok := s.Get(0)
	require.True(t, ok)
	assert.EqualValues(t, 32, v)

	added = s.Add(65535)
	require.True(t, added)
	assert.Equal(t, Medium, s.Tier())
	assert.Equal(t, 2, s.Count())
	v0, _ := s.Get(0)
	v1, _ := s.Get(1)
	assert.EqualValues(t, 32, v0)
	assert.EqualValues(t, 65535, v1)

	added = s.Add(-4294967295)
	require.True(t, added)
	assert.Equal(t, Full, s.Tier())
	assert.Equal(t, 3, s.Count())
	v0, _ = s.Get(0)
	v1, _ = s.Get(1)
	v2, _ := s.Get(2)
	assert.EqualValues(t, -4294967295, v0)
	assert.EqualValues(t, 32, v1)
	assert.EqualValues(t, 65535, v2)
}

func TestAddDedup(t *testing.T) {
	s := New()
	assert.True(t, s.Add(7))
	assert.False(t, s.Add(7))
	assert.Equal(t, 1, s.Count())
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(2)
	s.Add(100000)

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.False(t, s.Remove(999))
	assert.Equal(t, 2, s.Count())
	assert.True(t, s.Contains(100000))
	assert.False(t, s.Contains(2))
}

func TestWidthMonotonicity(t *testing.T) {
	s := New()
	tiers := []Tier{s.Tier()}
	values := []int64{1, 70000, math.MaxInt64, -5, 40000}
	for _, v := range values {
		s.Add(v)
		tiers = append(tiers, s.Tier())
	}
	for i := 1; i < len(tiers); i++ {
		assert.GreaterOrEqual(t, int(tiers[i]), int(tiers[i-1]), "tier must never decrease")
	}
	assert.Equal(t, Full, s.Tier())
}

func TestBoundaryValues(t *testing.T) {
	s := New()
	boundary := []int64{
		math.MinInt16, math.MaxInt16,
		math.MinInt32, math.MaxInt32,
		math.MinInt64, math.MaxInt64,
	}
	for _, v := range boundary {
		assert.True(t, s.Add(v))
	}
	assert.Equal(t, Full, s.Tier())
	assert.Equal(t, len(boundary), s.Count())
	for _, v := range boundary {
		assert.True(t, s.Contains(v))
	}
}

func TestSortedAndDisjoint(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := New()
	oracle := map[int64]bool{}

	for i := 0; i < 5000; i++ {
		v := r.Int63n(1<<62) - (1 << 61)
		if r.Intn(2) == 0 {
			added := s.Add(v)
			assert.Equal(t, !oracle[v], added)
			oracle[v] = true
		} else if len(oracle) > 0 {
			removed := s.Remove(v)
			assert.Equal(t, oracle[v], removed)
			delete(oracle, v)
		}
	}

	require.Equal(t, len(oracle), s.Count())

	prev := int64(math.MinInt64)
	first := true
	for i := 0; i < s.Count(); i++ {
		v, ok := s.Get(i)
		require.True(t, ok)
		if !first {
			assert.Greater(t, v, prev, "sequence must be strictly ascending")
		}
		first = false
		prev = v
	}

	var sorted []int64
	for v := range oracle {
		sorted = append(sorted, v)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, want := range sorted {
		got, _ := s.Get(i)
		assert.Equal(t, want, got)
	}
}

func TestGetOutOfRange(t *testing.T) {
	s := New()
	s.Add(1)
	_, ok := s.Get(-1)
	assert.False(t, ok)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestRandomUniformAndPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() {
		New().Random(prng.New())
	})

	s := New()
	for _, v := range []int64{1, 2, 3, 4, 5} {
		s.Add(v)
	}
	src := prng.New()
	for i := 0; i < 100; i++ {
		v := s.Random(src)
		assert.True(t, s.Contains(v))
	}
}

func TestBytesGrowsWithTier(t *testing.T) {
	s := New()
	small := s.Bytes()
	s.Add(1)
	s.Add(100000)
	medium := s.Bytes()
	s.Add(math.MaxInt64)
	full := s.Bytes()

	assert.GreaterOrEqual(t, medium, small)
	assert.GreaterOrEqual(t, full, medium)
}
