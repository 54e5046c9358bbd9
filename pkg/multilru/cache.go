// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import (
	"github.com/expr-lang/expr/vm"

	"github.com/ClusterCockpit/tiercore/pkg/dlog"
	"github.com/ClusterCockpit/tiercore/pkg/growth"
)

// Stats are the cache's lifetime counters.
type Stats struct {
	Inserts          uint64
	Evictions        uint64
	Demotions        uint64
	Promotions       uint64
	Deletes          uint64
	SafetyViolations uint64
}

// Cache is the S4LRU handle callers hold. Construct one with New.
type Cache struct {
	maxLevels int
	store     *store

	levels     []levelMeta
	levelMask  uint64
	lowest     uint64
	nextFresh  uint64
	freeHead   uint64
	freeCount  uint64
	count      uint64
	totalWeight uint64

	policy        Policy
	maxCount      uint64
	maxWeight     uint64
	autoEvict     bool
	evictCallback func(slotID uint64)
	customProgram *vm.Program

	stats Stats
}

// cacheOptions accumulates Option values before New builds the Cache, since
// several options (weights, capacity hints) must be known before the store
// is allocated.
type cacheOptions struct {
	weights       bool
	maxCount      uint64
	maxWeight     uint64
	autoEvict     bool
	evictCallback func(uint64)
	customPolicy  string
}

// Option configures a Cache at construction time.
type Option func(*cacheOptions)

// WithWeights enables the parallel per-slot weight array.
func WithWeights() Option {
	return func(o *cacheOptions) { o.weights = true }
}

// WithMaxCount sets the Count/Hybrid policy threshold.
func WithMaxCount(n uint64) Option {
	return func(o *cacheOptions) { o.maxCount = n }
}

// WithMaxWeight sets the Size/Hybrid policy threshold. Implies WithWeights.
func WithMaxWeight(w uint64) Option {
	return func(o *cacheOptions) {
		o.maxWeight = w
		o.weights = true
	}
}

// WithAutoEvict enables automatic policy enforcement after every insert.
func WithAutoEvict(enabled bool) Option {
	return func(o *cacheOptions) { o.autoEvict = enabled }
}

// WithEvictCallback registers fn to be called exactly once per true
// eviction, before the slot is recycled. fn must not mutate the cache.
func WithEvictCallback(fn func(slotID uint64)) Option {
	return func(o *cacheOptions) { o.evictCallback = fn }
}

// WithCustomPolicy compiles expr as a boolean predicate over
// {count, totalWeight, maxCount, maxWeight} and selects CustomPolicy.
func WithCustomPolicy(expr string) Option {
	return func(o *cacheOptions) { o.customPolicy = expr }
}

// New creates a Cache with maxLevels protected levels (1..64) sized to
// address at least startCapacity live entries, using policy as its
// eviction policy unless WithCustomPolicy overrides it.
func New(maxLevels int, startCapacity uint64, policy Policy, opts ...Option) *Cache {
	if maxLevels < 1 || maxLevels > 64 {
		panic("multilru: maxLevels must be in [1,64]")
	}

	var co cacheOptions
	for _, o := range opts {
		o(&co)
	}

	addrNeeded := uint64(maxLevels) + 1 + startCapacity
	c := &Cache{
		maxLevels: maxLevels,
		store:     newStore(addrNeeded, co.weights, growth.New()),
		nextFresh: uint64(maxLevels) + 1,
		policy:    policy,
		maxCount:  co.maxCount,
		maxWeight: co.maxWeight,
		autoEvict: co.autoEvict,
	}
	c.evictCallback = co.evictCallback
	c.initLevels()

	if co.customPolicy != "" {
		prog, err := compileCustomPolicy(co.customPolicy)
		if err != nil {
			dlog.Errorf("multilru: %v", err)
		} else {
			c.customProgram = prog
			c.policy = CustomPolicy
		}
	}

	return c
}

// Count returns the number of live (populated) entries.
func (c *Cache) Count() uint64 { return c.count }

// TotalWeight returns the sum of weights of all live entries.
func (c *Cache) TotalWeight() uint64 { return c.totalWeight }

// Capacity returns the number of slot ids currently addressable.
func (c *Cache) Capacity() uint64 { return c.store.capacity }

// EntryWidth returns the current per-slot byte width.
func (c *Cache) EntryWidth() int { return c.store.width }

// Bytes estimates the cache's heap footprint.
func (c *Cache) Bytes() int {
	const headerBytes = 128
	b := headerBytes + len(c.store.data) + len(c.levels)*32
	if c.store.weights != nil {
		b += len(c.store.weights) * 8
	}
	return b
}

// GetStats returns a copy of the cache's lifetime counters.
func (c *Cache) GetStats() Stats { return c.stats }

// LevelCount returns the number of live entries at level L.
func (c *Cache) LevelCount(level int) uint64 {
	if level < 0 || level >= c.maxLevels {
		return 0
	}
	return c.levels[level].count
}

// LevelWeight returns the sum of weights of live entries at level L.
func (c *Cache) LevelWeight(level int) uint64 {
	if level < 0 || level >= c.maxLevels {
		return 0
	}
	return c.levels[level].weight
}

// IsPopulated reports whether slot is a live entry.
func (c *Cache) IsPopulated(slot uint64) bool {
	if !c.validSlot(slot) {
		return false
	}
	return c.store.isPopulated(slot)
}

// GetLevel returns slot's current level, or -1 if slot is not populated.
func (c *Cache) GetLevel(slot uint64) int {
	if !c.IsPopulated(slot) {
		return -1
	}
	return c.store.getLevel(slot)
}

// GetWeight returns slot's weight, or 0 if unpopulated or weights disabled.
func (c *Cache) GetWeight(slot uint64) uint64 {
	if !c.IsPopulated(slot) {
		return 0
	}
	return c.store.getWeight(slot)
}

func (c *Cache) validSlot(slot uint64) bool {
	return slot > uint64(c.maxLevels) && slot < c.nextFresh
}

// SetAutoEvict toggles automatic policy enforcement after inserts.
func (c *Cache) SetAutoEvict(enabled bool) { c.autoEvict = enabled }

// SetEvictCallback replaces the eviction callback.
func (c *Cache) SetEvictCallback(fn func(slotID uint64)) { c.evictCallback = fn }

// SetMaxCount sets the Count/Hybrid policy threshold.
func (c *Cache) SetMaxCount(n uint64) { c.maxCount = n }

// SetMaxWeight sets the Size/Hybrid policy threshold.
func (c *Cache) SetMaxWeight(w uint64) { c.maxWeight = w }

// SetPolicy changes the active eviction policy.
func (c *Cache) SetPolicy(p Policy) { c.policy = p }

// Insert creates a new unweighted entry at level 0, head position, and
// returns its slot id. If autoEvict is set, policy enforcement runs before
// returning.
func (c *Cache) Insert() uint64 {
	return c.InsertWeighted(0)
}

// InsertWeighted is Insert with an explicit weight.
func (c *Cache) InsertWeighted(weight uint64) uint64 {
	id := c.allocSlot()
	c.store.setLevel(id, 0)
	c.store.setPopulated(id, true)
	c.store.setIsHead(id, false)
	c.store.setWeight(id, weight)

	c.insertAtHead(0, id)
	c.count++
	c.totalWeight += c.store.getWeight(id)
	c.stats.Inserts++

	if c.autoEvict {
		c.enforcePolicy()
	}
	return id
}

// UpdateWeight adjusts slot's weight without moving it in its level.
func (c *Cache) UpdateWeight(slot uint64, w uint64) {
	if !c.IsPopulated(slot) {
		return
	}
	old := c.store.getWeight(slot)
	c.store.setWeight(slot, w)
	w = c.store.getWeight(slot) // stays 0 when weight tracking is disabled
	level := c.store.getLevel(slot)
	c.levels[level].weight += w - old
	c.totalWeight += w - old
}

// Increase promotes slot: unlink from its current level, re-insert at the
// head of min(currentLevel+1, maxLevels-1).
func (c *Cache) Increase(slot uint64) {
	if !c.IsPopulated(slot) {
		return
	}
	level := c.store.getLevel(slot)
	target := level + 1
	if target > c.maxLevels-1 {
		target = c.maxLevels - 1
	}
	if target == level {
		return
	}

	c.removeFromList(level, slot)
	c.store.setLevel(slot, target)
	c.insertAtHead(target, slot)
	c.stats.Promotions++
}

// RemoveMinimum performs one S4LRU step on the current victim: a demotion
// if it sits above level 0, a true eviction if it is already at level 0.
// It reports (0, false) when the cache is empty.
func (c *Cache) RemoveMinimum() (uint64, bool) {
	if c.lowest == 0 {
		return 0, false
	}
	victim := c.lowest
	level := c.store.getLevel(victim)

	c.removeFromList(level, victim)

	if level > 0 {
		target := level - 1
		c.store.setLevel(victim, target)
		c.insertAtHead(target, victim)
		c.stats.Demotions++
		return victim, true
	}

	c.freeSlot(victim)
	return victim, true
}

func (c *Cache) freeSlot(id uint64) {
	weight := c.store.getWeight(id)
	c.store.setPopulated(id, false)
	if c.evictCallback != nil {
		c.evictCallback(id)
	}
	c.pushFree(id)
	c.count--
	c.totalWeight -= weight
	c.stats.Evictions++
}

// Delete unconditionally removes slot, regardless of its level.
func (c *Cache) Delete(slot uint64) bool {
	if !c.IsPopulated(slot) {
		c.stats.SafetyViolations++
		return false
	}
	level := c.store.getLevel(slot)
	c.removeFromList(level, slot)

	weight := c.store.getWeight(slot)
	c.store.setPopulated(slot, false)
	c.pushFree(slot)
	c.count--
	c.totalWeight -= weight
	c.stats.Deletes++
	return true
}

// EvictN performs RemoveMinimum repeatedly, counting only true evictions,
// up to n of them (or until the cache empties).
func (c *Cache) EvictN(n int) int {
	evicted := 0
	for evicted < n && c.count > 0 {
		id, ok := c.RemoveMinimum()
		if !ok {
			break
		}
		if !c.store.isPopulated(id) {
			evicted++
		}
	}
	return evicted
}

// EvictToSize evicts true-evictions until totalWeight <= targetWeight or
// maxN evictions have happened.
func (c *Cache) EvictToSize(targetWeight uint64, maxN int) int {
	evicted := 0
	for evicted < maxN && c.totalWeight > targetWeight && c.count > 0 {
		id, ok := c.RemoveMinimum()
		if !ok {
			break
		}
		if !c.store.isPopulated(id) {
			evicted++
		}
	}
	return evicted
}

// GetNLowest walks levels ascending (level 0 upward), taking each level's
// entries from its oldest (tail) end, until n ids are collected.
func (c *Cache) GetNLowest(n int) []uint64 {
	out := make([]uint64, 0, n)
	for l := 0; l < c.maxLevels && len(out) < n; l++ {
		sid := sentinelID(l)
		id := c.levels[l].tail
		for id != 0 && id != sid && len(out) < n {
			out = append(out, id)
			id = c.store.getNext(id)
		}
	}
	return out
}

// GetNHighest walks levels descending (top level downward), taking each
// level's entries from its newest (head) end, until n ids are collected.
func (c *Cache) GetNHighest(n int) []uint64 {
	out := make([]uint64, 0, n)
	for l := c.maxLevels - 1; l >= 0 && len(out) < n; l-- {
		sid := sentinelID(l)
		id := c.levels[l].head
		for id != 0 && id != sid && len(out) < n {
			out = append(out, id)
			id = c.store.getPrev(id)
		}
	}
	return out
}
