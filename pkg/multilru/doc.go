// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package multilru implements an S4LRU (segmented LRU with N protected
// levels) cache skeleton over bit-packed entries. Entries live in a single
// flat byte array indexed by a 1-based slot id; the per-entry width is
// chosen from a fixed tier table (5 to 16 bytes) based on how many slot ids
// the cache must be able to address, and is upgraded in place as the cache
// grows.
//
// The handle callers hold is *Cache. Unlike pkg/intset and pkg/multiarray,
// Cache's own tier (entry width) upgrade never changes which fields a
// caller-visible slot id refers to -- only how densely it is packed -- so
// there is no tier-dispatch switch at the public API the way the other two
// packages have one. Width upgrades are entirely internal to store.go.
package multilru
