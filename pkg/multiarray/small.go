// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multiarray

import (
	"github.com/ClusterCockpit/tiercore/pkg/alloc"
	"github.com/ClusterCockpit/tiercore/pkg/growth"
)

// smallRepr is one contiguous buffer of len*count bytes. Inserts are
// realloc + memmove + store.
type smallRepr struct {
	buf []byte
}

func (s *smallRepr) get(idx, elemLen int) []byte {
	off := idx * elemLen
	out := make([]byte, elemLen)
	copy(out, s.buf[off:off+elemLen])
	return out
}

func (s *smallRepr) insert(idx int, value []byte, elemLen int, a alloc.Allocator, oracle growth.Oracle) error {
	needed := len(s.buf) + elemLen
	if cap(s.buf) < needed {
		target := oracle.RoundToAllocatorClass(oracle.NextSize(cap(s.buf)))
		if target < needed {
			target = needed
		}
		grown, err := a.Realloc(s.buf, target)
		if err != nil {
			return err
		}
		s.buf = grown[:len(s.buf)]
	}

	off := idx * elemLen
	s.buf = s.buf[:len(s.buf)+elemLen]
	copy(s.buf[off+elemLen:], s.buf[off:len(s.buf)-elemLen])
	copy(s.buf[off:off+elemLen], value)
	return nil
}

func (s *smallRepr) delete(idx, elemLen int) {
	off := idx * elemLen
	copy(s.buf[off:], s.buf[off+elemLen:])
	s.buf = s.buf[:len(s.buf)-elemLen]
}
