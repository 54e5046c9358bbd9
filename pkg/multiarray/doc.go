// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package multiarray implements an indexable sequence of fixed-width
// records with O(1) random access at small sizes and reasonable
// insert/delete cost even once the sequence is large.
//
// # Tiers
//
// A MultiArray starts as Small: one contiguous buffer, just like a flat Go
// slice of fixed-size records. Once the element count reaches the
// configured row capacity (rowMax), it promotes to Medium: a directory of
// fixed-capacity nodes, each holding up to rowMax records, so inserts only
// ever move data within one node (plus a possible split) instead of
// shifting the whole sequence. When the Medium node directory itself grows
// large enough that its pointer overhead would dominate payload bytes, the
// set promotes to Large: the same fixed-capacity nodes, but linked via an
// XOR-compressed doubly-linked list instead of a directory array, trading
// direct indexing for O(1) prepend/append and a much smaller per-node
// bookkeeping cost. Promotion never runs backwards.
//
// This mirrors a buffer-chain growth design: grow by linking in new
// fixed-capacity nodes instead of reallocating and copying the whole
// sequence.
//
// # Handle
//
// As with intset, a MultiArray's "tagged pointer, rewritable on migration"
// handle is rendered here as a pointer receiver (*MultiArray) whose
// internal tier and representation fields are swapped in place by Insert
// when a promotion is triggered.
package multiarray
