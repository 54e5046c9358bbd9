// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multilru

// widthTier describes one entry-width tier: width is the per-slot byte
// count, addrBits is how many bits each of prev/next occupies at that
// width.
type widthTier struct {
	width    int
	addrBits uint
}

// widthTiers is fixed by construction: each width packs prev and next into
// exactly (8*width-8)/2 bits apiece, followed by a 6-bit level, a populated
// bit and an isHead bit -- 8*width bits total, so every tier is exactly
// width bytes wide with no padding.
var widthTiers = []widthTier{
	{5, 16},
	{6, 20},
	{7, 24},
	{8, 28},
	{9, 32},
	{10, 36},
	{11, 40},
	{12, 44},
	{16, 60},
}

func maxSlotID(addrBits uint) uint64 {
	if addrBits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << addrBits) - 1
}

// selectWidth returns the narrowest tier whose address space can hold
// addrNeeded distinct slot ids (including the reserved null id and level
// sentinels). It panics if addrNeeded exceeds even the widest tier, which
// would require more than 2^60 slots.
func selectWidth(addrNeeded uint64) widthTier {
	for _, t := range widthTiers {
		if maxSlotID(t.addrBits) >= addrNeeded {
			return t
		}
	}
	panic("multilru: requested capacity exceeds the widest entry tier")
}

// fieldLayout returns the bit offsets and widths of an entry's five fields
// for a given byte width.
type fieldLayout struct {
	prevOff, nextOff             uint
	addrBits                     uint
	levelOff, populatedOff, headOff uint
}

func layoutFor(width int) fieldLayout {
	for _, t := range widthTiers {
		if t.width == width {
			n := uint(8*width - 8)
			half := n / 2
			return fieldLayout{
				prevOff:      0,
				nextOff:      half,
				addrBits:     half,
				levelOff:     n,
				populatedOff: n + 6,
				headOff:      n + 7,
			}
		}
	}
	panic("multilru: unknown entry width")
}
