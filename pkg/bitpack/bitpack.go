// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bitpack provides the little-endian, arbitrary-bit-offset
// read/write pair multi-LRU's entry widths are built from.
//
// File format (conceptually, mirroring how the metric store's binary
// checkpoint format documents its own little-endian layout): a record is a
// flat byte buffer of up to 16 bytes, read/written as a pair of uint64
// "scratch words" (lo = bytes[0:8], hi = bytes[8:16] when present). Fields
// are packed back to back, low bits first, and may straddle the boundary
// between lo and hi -- that seam is the one place in the whole package where
// care is required, so it is isolated here behind Get/Set rather than
// re-derived at every call site.
package bitpack

import "encoding/binary"

const maxWidth = 16

// Get reads a bitWidth-bit unsigned field starting at bitOffset from buf,
// interpreting buf as little-endian. bitWidth must be in [1,64] and
// bitOffset+bitWidth must not exceed 8*len(buf); len(buf) must not exceed 16
// bytes (the widest multi-LRU entry tier).
func Get(buf []byte, bitOffset, bitWidth uint) uint64 {
	lo, hi := loadWords(buf)
	return getBits(lo, hi, bitOffset, bitWidth)
}

// Set writes value's low bitWidth bits into buf starting at bitOffset,
// leaving all other bits of buf untouched.
func Set(buf []byte, bitOffset, bitWidth uint, value uint64) {
	lo, hi := loadWords(buf)
	lo, hi = setBits(lo, hi, bitOffset, bitWidth, value)
	storeWords(buf, lo, hi)
}

func loadWords(buf []byte) (lo, hi uint64) {
	var a, b [8]byte
	copy(a[:], buf)
	lo = binary.LittleEndian.Uint64(a[:])
	if len(buf) > 8 {
		copy(b[:], buf[8:])
		hi = binary.LittleEndian.Uint64(b[:])
	}
	return lo, hi
}

func storeWords(buf []byte, lo, hi uint64) {
	var a, b [8]byte
	binary.LittleEndian.PutUint64(a[:], lo)
	binary.LittleEndian.PutUint64(b[:], hi)
	n := copy(buf, a[:])
	if len(buf) > 8 {
		copy(buf[8:], b[:len(buf)-n])
	}
}

// getBits extracts bitWidth bits starting at bitOffset from the 128-bit
// value (hi<<64 | lo).
func getBits(lo, hi uint64, bitOffset, bitWidth uint) uint64 {
	mask := widthMask(bitWidth)
	if bitOffset >= 64 {
		return (hi >> (bitOffset - 64)) & mask
	}

	if bitOffset+bitWidth <= 64 {
		return (lo >> bitOffset) & mask
	}

	// Field straddles the lo/hi seam: take the low part from lo, the
	// remainder from the bottom of hi, and stitch them together.
	loBits := 64 - bitOffset
	loPart := lo >> bitOffset
	hiPart := hi & widthMask(bitWidth-loBits)
	return (loPart | (hiPart << loBits)) & mask
}

// setBits writes bitWidth low bits of value into the 128-bit value
// (hi<<64 | lo) starting at bitOffset, returning the updated halves.
func setBits(lo, hi uint64, bitOffset, bitWidth uint, value uint64) (uint64, uint64) {
	value &= widthMask(bitWidth)

	if bitOffset >= 64 {
		off := bitOffset - 64
		clear := ^(widthMask(bitWidth) << off)
		hi = (hi & clear) | (value << off)
		return lo, hi
	}

	if bitOffset+bitWidth <= 64 {
		clear := ^(widthMask(bitWidth) << bitOffset)
		lo = (lo & clear) | (value << bitOffset)
		return lo, hi
	}

	loBits := 64 - bitOffset
	hiBits := bitWidth - loBits

	loClear := ^(widthMask(loBits) << bitOffset)
	lo = (lo & loClear) | ((value & widthMask(loBits)) << bitOffset)

	hiClear := ^widthMask(hiBits)
	hi = (hi & hiClear) | (value >> loBits)
	return lo, hi
}

func widthMask(bitWidth uint) uint64 {
	if bitWidth >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bitWidth) - 1
}
