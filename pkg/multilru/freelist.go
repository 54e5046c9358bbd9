// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

// pushFree threads id onto the LIFO free list via its next field, so the
// most recently freed slot is always the next one handed out.
func (c *Cache) pushFree(id uint64) {
	c.store.setNext(id, c.freeHead)
	c.freeHead = id
	c.freeCount++
}

// popFree pops the LIFO free list, or reports false if it is empty.
func (c *Cache) popFree() (uint64, bool) {
	if c.freeHead == 0 {
		return 0, false
	}
	id := c.freeHead
	c.freeHead = c.store.getNext(id)
	c.freeCount--
	return id, true
}

// allocSlot returns a slot id for a new live entry: recycled slots first,
// then the high-water mark, growing the store when the mark hits capacity.
func (c *Cache) allocSlot() uint64 {
	if id, ok := c.popFree(); ok {
		return id
	}
	if c.nextFresh >= c.store.capacity {
		c.store.grow()
	}
	id := c.nextFresh
	c.nextFresh++
	return id
}
