/*
 * header.go, part of mdtools.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package misa

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

//GlobalHeaderBytes is the size of the global header of the "next" format in the file:
//the C struct written by MISA-MD, including its 4 bytes of trailing padding.
const GlobalHeaderBytes = 80

//Bits of GlobalHeader.Mask. Each one enables a 3-vector of float64 in the
//atom items, in this order.
const (
	MaskPosition uint32 = 1 << iota
	MaskVelocity
	MaskForce
)

const (
	idTypeBytes = 8 + 4 //id and type are always there, stored without padding.
	vectorBytes = 3 * 8
)

//GlobalHeader is the meta-information at the start of a "next" format file.
type GlobalHeader struct {
	SelfSize         uint64
	FrameMetaSize    uint64
	BlockAtoms       uint64
	AtomsNum         uint64
	AtomItemBytes    uint64
	MPIRanks         uint64
	Mask             uint32
	FormatVersion    uint32
	GlobalHeaderSize uint64
	LocalSize        uint64
	Frames           uint32
}

//ItemBytes returns the size of one atom item for the given mask.
func ItemBytes(mask uint32) uint64 {
	return idTypeBytes + uint64(bits.OnesCount32(mask&(MaskPosition|MaskVelocity|MaskForce)))*vectorBytes
}

//decodeHeader fills the header from the little-endian bytes in b, which must
//be at least GlobalHeaderBytes long.
func decodeHeader(b []byte) GlobalHeader {
	le := binary.LittleEndian
	return GlobalHeader{
		SelfSize:         le.Uint64(b[0:]),
		FrameMetaSize:    le.Uint64(b[8:]),
		BlockAtoms:       le.Uint64(b[16:]),
		AtomsNum:         le.Uint64(b[24:]),
		AtomItemBytes:    le.Uint64(b[32:]),
		MPIRanks:         le.Uint64(b[40:]),
		Mask:             le.Uint32(b[48:]),
		FormatVersion:    le.Uint32(b[52:]),
		GlobalHeaderSize: le.Uint64(b[56:]),
		LocalSize:        le.Uint64(b[64:]),
		Frames:           le.Uint32(b[72:]),
	}
}

//Bytes encodes the header in the layout used in the files.
func (H GlobalHeader) Bytes() []byte {
	le := binary.LittleEndian
	b := make([]byte, GlobalHeaderBytes)
	le.PutUint64(b[0:], H.SelfSize)
	le.PutUint64(b[8:], H.FrameMetaSize)
	le.PutUint64(b[16:], H.BlockAtoms)
	le.PutUint64(b[24:], H.AtomsNum)
	le.PutUint64(b[32:], H.AtomItemBytes)
	le.PutUint64(b[40:], H.MPIRanks)
	le.PutUint32(b[48:], H.Mask)
	le.PutUint32(b[52:], H.FormatVersion)
	le.PutUint64(b[56:], H.GlobalHeaderSize)
	le.PutUint64(b[64:], H.LocalSize)
	le.PutUint32(b[72:], H.Frames)
	return b
}

//check returns the message of the first inconsistency found in H, or "".
func (H GlobalHeader) check() string {
	switch {
	case H.GlobalHeaderSize != GlobalHeaderBytes:
		return fmt.Sprintf("%s: %d bytes declared, %d expected", WrongHeaderSize, H.GlobalHeaderSize, GlobalHeaderBytes)
	case H.SelfSize < GlobalHeaderBytes:
		return fmt.Sprintf("%s: %d bytes", ShortSelfSize, H.SelfSize)
	case H.MPIRanks == 0:
		return NoRanks
	case H.BlockAtoms == 0:
		return NoBlockAtoms
	case H.Mask&^(MaskPosition|MaskVelocity|MaskForce) != 0:
		return fmt.Sprintf("%s: %#x", UnknownMask, H.Mask)
	case H.AtomItemBytes != ItemBytes(H.Mask):
		return fmt.Sprintf("%s: %d bytes declared, %d expected", WrongItemSize, H.AtomItemBytes, ItemBytes(H.Mask))
	}
	return ""
}

//firstItemsEnd returns the offset right after the first item of the last
//rank, which every file with frames must reach, since each rank writes at
//least an end-of-rank item per frame. It returns false if the offset
//overflows.
func (H GlobalHeader) firstItemsEnd() (uint64, bool) {
	var carry, hi, acc uint64
	add := func(a, b uint64) uint64 {
		var c uint64
		a, c = bits.Add64(a, b, 0)
		carry |= c
		return a
	}
	mul := func(a, b uint64) uint64 {
		h, l := bits.Mul64(a, b)
		hi |= h
		return l
	}
	acc = add(H.SelfSize, mul(uint64(H.Frames), H.FrameMetaSize))
	acc = add(acc, mul(H.MPIRanks, H.LocalSize))
	acc = add(acc, mul(mul(H.MPIRanks-1, H.BlockAtoms), H.AtomItemBytes))
	acc = add(acc, H.AtomItemBytes)
	return acc, carry == 0 && hi == 0
}

//dataStart returns the offset of the first block of the given rank.
func (H GlobalHeader) dataStart(rank uint64) uint64 {
	base := H.SelfSize + uint64(H.Frames)*H.FrameMetaSize + H.MPIRanks*H.LocalSize
	return base + rank*H.BlockAtoms*H.AtomItemBytes
}

func (H GlobalHeader) String() string {
	return fmt.Sprintf("version %d, %d frames, %d atoms, %d ranks, %d atoms per block, %d bytes per atom, mask %03b",
		H.FormatVersion, H.Frames, H.AtomsNum, H.MPIRanks, H.BlockAtoms, H.AtomItemBytes, H.Mask)
}
