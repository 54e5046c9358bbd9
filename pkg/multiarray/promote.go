// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multiarray

import "github.com/ClusterCockpit/tiercore/pkg/dlog"

// promoteSmallToMedium hands the Small tier's single buffer off to a single
// Medium node rather than re-splitting it into multiple nodes: Small only
// ever reaches exactly rowMax elements before this fires, so one full node
// is exactly what Medium would have built anyway, and the very next insert
// exercises the ordinary full-node split path.
func (m *MultiArray) promoteSmallToMedium() {
	n := &mediumNode{data: m.small.buf, count: m.count}
	if cap(n.data) < m.rowMax*m.elemLen {
		grown := make([]byte, len(n.data), m.rowMax*m.elemLen)
		copy(grown, n.data)
		n.data = grown
	}
	m.medium = mediumRepr{nodes: []*mediumNode{n}}
	m.small = smallRepr{}
	m.tier = Medium

	dlog.Assert(len(m.medium.nodes) == 1 && m.medium.nodes[0].count == m.count,
		"multiarray: promoteSmallToMedium lost elements: node count %d, want %d",
		m.medium.nodes[0].count, m.count)
}

// promoteMediumToLarge threads the existing node directory into an
// XOR-linked list in the same order, reusing each node's already-allocated
// data buffer instead of copying element bytes.
func (m *MultiArray) promoteMediumToLarge() {
	var l largeRepr
	var prev *xorNode
	for _, mn := range m.medium.nodes {
		xn := &xorNode{data: mn.data, count: mn.count}
		l.linkInsertAfter(prev, nil, xn)
		prev = xn
	}
	m.large = l
	m.medium = mediumRepr{}
	m.tier = Large

	sum := 0
	for n := range m.large.alive {
		sum += n.count
	}
	dlog.Assert(sum == m.count,
		"multiarray: promoteMediumToLarge lost elements: %d nodes sum to %d, want %d",
		len(m.large.alive), sum, m.count)
}
