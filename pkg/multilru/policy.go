// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Policy selects which condition enforcePolicy enforces.
type Policy uint8

const (
	// CountPolicy breaches when Count exceeds MaxCount.
	CountPolicy Policy = iota
	// SizePolicy breaches when TotalWeight exceeds MaxWeight (requires weights).
	SizePolicy
	// HybridPolicy breaches on either CountPolicy or SizePolicy.
	HybridPolicy
	// CustomPolicy breaches when the compiled expr-lang predicate evaluates true.
	CustomPolicy
)

// NeedsEviction reports whether the cache currently breaches its configured
// policy.
func (c *Cache) NeedsEviction() bool {
	switch c.policy {
	case CountPolicy:
		return c.maxCount > 0 && c.count > c.maxCount
	case SizePolicy:
		return c.maxWeight > 0 && c.totalWeight > c.maxWeight
	case HybridPolicy:
		return (c.maxCount > 0 && c.count > c.maxCount) ||
			(c.maxWeight > 0 && c.totalWeight > c.maxWeight)
	case CustomPolicy:
		return c.evalCustomPolicy()
	default:
		return false
	}
}

func (c *Cache) evalCustomPolicy() bool {
	if c.customProgram == nil {
		return false
	}
	env := map[string]any{
		"count":       int64(c.count),
		"totalWeight": int64(c.totalWeight),
		"maxCount":    int64(c.maxCount),
		"maxWeight":   int64(c.maxWeight),
	}
	out, err := expr.Run(c.customProgram, env)
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

// compileCustomPolicy compiles a boolean expression over
// {count, totalWeight, maxCount, maxWeight} once, so NeedsEviction only
// pays for a VM run, never a parse, on the hot path.
func compileCustomPolicy(src string) (*vm.Program, error) {
	env := map[string]any{
		"count":       int64(0),
		"totalWeight": int64(0),
		"maxCount":    int64(0),
		"maxWeight":   int64(0),
	}
	prog, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("multilru: compiling custom policy: %w", err)
	}
	return prog, nil
}

// enforcePolicy loops RemoveMinimum until the policy no longer breaches or
// the cache empties. This may demote an entry through every level before a
// single true eviction occurs -- that is correct S4LRU behavior, not a bug.
func (c *Cache) enforcePolicy() {
	for c.NeedsEviction() && c.count > 0 {
		c.RemoveMinimum()
	}
}
