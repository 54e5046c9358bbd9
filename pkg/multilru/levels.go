// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import "math/bits"

// levelMeta is the per-level bookkeeping: head is the current MRU
// (head-most) live slot, tail is the current LRU (oldest) live slot, both
// 0 when the level is empty.
type levelMeta struct {
	head, tail uint64
	count      uint64
	weight     uint64
}

// sentinelID returns the reserved head-sentinel slot for level.
func sentinelID(level int) uint64 {
	return uint64(level) + 1
}

// initLevels materializes one sentinel slot per level, each forming a
// one-node empty circular list (sentinel.prev == sentinel.next == itself).
func (c *Cache) initLevels() {
	c.levels = make([]levelMeta, c.maxLevels)
	for l := 0; l < c.maxLevels; l++ {
		id := sentinelID(l)
		c.store.setIsHead(id, true)
		c.store.setLevel(id, l)
		c.store.setPrev(id, id)
		c.store.setNext(id, id)
	}
}

// insertAtHead links slot id, already written with level and weight, in as
// the new MRU entry of its level.
func (c *Cache) insertAtHead(level int, id uint64) {
	sid := sentinelID(level)
	lv := &c.levels[level]

	oldHead := c.store.getPrev(sid) // sentinel.prev == current MRU (or itself if empty)
	c.store.setPrev(id, oldHead)
	c.store.setNext(id, sid)
	c.store.setNext(oldHead, id)
	c.store.setPrev(sid, id)

	wasEmpty := lv.count == 0
	lv.head = id
	if wasEmpty {
		lv.tail = id
	}
	lv.count++
	lv.weight += c.store.getWeight(id)

	c.levelMask |= 1 << uint(level)
	if c.lowest == 0 || level < c.store.getLevel(c.lowest) {
		c.recomputeLowest()
	}
}

// removeFromList splices id out of its level's circular list. id's own
// prev/next fields are left stale; callers overwrite them before reuse.
func (c *Cache) removeFromList(level int, id uint64) {
	sid := sentinelID(level)
	lv := &c.levels[level]

	p := c.store.getPrev(id)
	n := c.store.getNext(id)
	c.store.setNext(p, n)
	c.store.setPrev(n, p)

	if lv.tail == id {
		if n == sid {
			lv.tail = 0
		} else {
			lv.tail = n
		}
	}
	if lv.head == id {
		if p == sid {
			lv.head = 0
		} else {
			lv.head = p
		}
	}

	lv.count--
	lv.weight -= c.store.getWeight(id)
	if lv.count == 0 {
		c.levelMask &^= 1 << uint(level)
	}

	if c.lowest == id {
		c.recomputeLowest()
	}
}

// recomputeLowest finds the current LRU victim in O(1) via the
// level-occupancy bitmask's lowest set bit.
func (c *Cache) recomputeLowest() {
	if c.levelMask == 0 {
		c.lowest = 0
		return
	}
	l := bits.TrailingZeros64(c.levelMask)
	c.lowest = c.levels[l].tail
}
