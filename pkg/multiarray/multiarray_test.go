// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multiarray

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enc(v int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

func dec(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func TestHeadInserts(t *testing.T) {
	m := New(8, 512)
	for i := 0; i < 7280; i++ {
		require.NoError(t, m.Insert(0, enc(int64(i))))
	}
	require.Equal(t, 7280, m.Count())
	for k := 0; k < 7280; k++ {
		v, ok := m.Get(k)
		require.True(t, ok)
		assert.EqualValues(t, 7279-k, dec(v))
	}
}

func TestTierUpgradesAgainstOracle(t *testing.T) {
	m := New(8, 512)
	var oracle [][]byte
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 10000; i++ {
		v := enc(int64(i))
		idx := 0
		if n := len(oracle); n > 0 {
			idx = r.Intn(n + 1)
		}
		require.NoError(t, m.Insert(idx, v))

		oracle = append(oracle, nil)
		copy(oracle[idx+1:], oracle[idx:len(oracle)-1])
		oracle[idx] = v
	}

	assert.Equal(t, Large, m.Tier())
	require.Equal(t, len(oracle), m.Count())
	for i, want := range oracle {
		got, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestTierStaircase(t *testing.T) {
	m := New(4, 4)
	assert.Equal(t, Small, m.Tier())

	for i := 0; i < 4; i++ {
		require.NoError(t, m.Insert(i, enc(int64(i))[:4]))
	}
	assert.Equal(t, Small, m.Tier())

	require.NoError(t, m.Insert(4, enc(int64(4))[:4]))
	assert.Equal(t, Medium, m.Tier())
	assert.Equal(t, 5, m.Count())

	for m.Tier() == Medium {
		require.NoError(t, m.Insert(m.Count(), enc(int64(m.Count()))[:4]))
	}
	assert.Equal(t, Large, m.Tier())

	for i := 0; i < m.Count(); i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.EqualValues(t, i, int64(binary.LittleEndian.Uint32(v)))
	}
}

func TestNegativeIndices(t *testing.T) {
	m := New(8, 4)
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Insert(i, enc(int64(i))))
	}

	v, ok := m.Get(-1)
	require.True(t, ok)
	assert.EqualValues(t, 9, dec(v))

	v, ok = m.Get(-10)
	require.True(t, ok)
	assert.EqualValues(t, 0, dec(v))

	_, ok = m.Get(-11)
	assert.False(t, ok)

	head, ok := m.GetHead()
	require.True(t, ok)
	assert.EqualValues(t, 0, dec(head))

	tail, ok := m.GetTail()
	require.True(t, ok)
	assert.EqualValues(t, 9, dec(tail))
}

func TestDeleteAndNegativeInsert(t *testing.T) {
	m := New(8, 4)
	for i := 0; i < 20; i++ {
		require.NoError(t, m.Insert(-1, enc(int64(i))))
	}
	require.Equal(t, 20, m.Count())
	for i := 0; i < 20; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.EqualValues(t, i, dec(v))
	}

	assert.True(t, m.Delete(0))
	assert.Equal(t, 19, m.Count())
	v, _ := m.Get(0)
	assert.EqualValues(t, 1, dec(v))

	assert.True(t, m.Delete(-1))
	assert.Equal(t, 18, m.Count())
	v, _ = m.Get(-1)
	assert.EqualValues(t, 18, dec(v))
}

func TestInsertOutOfRange(t *testing.T) {
	m := New(8, 4)
	assert.Error(t, m.Insert(1, enc(1)))
	assert.Error(t, m.Insert(-2, enc(1)))
	require.NoError(t, m.Insert(0, enc(1)))
	assert.ErrorIs(t, m.Insert(2, enc(2)), ErrInvalidIndex)
}

func TestInsertWrongWidth(t *testing.T) {
	m := New(8, 4)
	assert.Error(t, m.Insert(0, []byte{1, 2, 3}))
}

func TestDeleteOutOfRange(t *testing.T) {
	m := New(8, 4)
	require.NoError(t, m.Insert(0, enc(1)))
	assert.False(t, m.Delete(1))
	assert.False(t, m.Delete(-2))
}

func TestRandomOpsAgainstOracle(t *testing.T) {
	m := New(8, 8)
	var oracle [][]byte
	r := rand.New(rand.NewSource(99))

	for i := 0; i < 20000; i++ {
		if len(oracle) == 0 || r.Intn(3) != 0 {
			v := enc(int64(i))
			idx := r.Intn(len(oracle) + 1)
			require.NoError(t, m.Insert(idx, v))
			oracle = append(oracle, nil)
			copy(oracle[idx+1:], oracle[idx:len(oracle)-1])
			oracle[idx] = v
		} else {
			idx := r.Intn(len(oracle))
			require.True(t, m.Delete(idx))
			oracle = append(oracle[:idx], oracle[idx+1:]...)
		}
	}

	require.Equal(t, len(oracle), m.Count())
	for i, want := range oracle {
		got, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestBytesGrowsWithTier(t *testing.T) {
	m := New(8, 4)
	small := m.Bytes()
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Insert(i, enc(int64(i))))
	}
	for m.Tier() == Small {
		require.NoError(t, m.Insert(m.Count(), enc(int64(m.Count()))))
	}
	medium := m.Bytes()
	for m.Tier() == Medium {
		require.NoError(t, m.Insert(m.Count(), enc(int64(m.Count()))))
	}
	large := m.Bytes()

	assert.GreaterOrEqual(t, medium, small)
	assert.GreaterOrEqual(t, large, medium)
}
