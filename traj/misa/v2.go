/*
 * v2.go, part of mdtools.
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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	md "github.com/rmera/mdtools"
)

//cursor is the resumable read position of one rank: where its data continues
//in the file, and how many items of the current block it has consumed.
type cursor struct {
	offset uint64
	index  uint32
}

//DecoderV2 reads the "next" MISA-MD binary format: each rank owns a
//contiguous stream of fixed-size atom items, stored in blocks that are
//interleaved with the blocks of the other ranks. In each frame, a rank
//writes its atoms followed by an item with type EndOfRank, and the next
//frame continues right after it.
type DecoderV2 struct {
	f        *os.File
	r        *bufio.Reader
	filename string
	header   GlobalHeader
	cursors  []cursor //one per rank, like a ring: [0, MPIRanks-1]
	rank     uint32   //the active rank
	index    uint32   //items consumed in the current block of the active rank
	frame    uint32   //frames started so far
	pos      int64    //offset of r in the file
	buf      []byte
	atom     md.Atom
	err      error
	readable bool
}

//NewV2 opens a "next" format file, reads and checks its global header,
//and returns a decoder ready to read the first frame.
func NewV2(filename string) (*DecoderV2, error) {
	var err error
	D := new(DecoderV2)
	D.filename = filename
	D.f, err = os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), filename, -1, md.ErrIO, []string{"NewV2"}, true}
	}
	b := make([]byte, GlobalHeaderBytes)
	if _, err = io.ReadFull(D.f, b); err != nil {
		D.f.Close()
		return nil, Error{ShortHeader + ": " + err.Error(), filename, 0, md.ErrBadHeader, []string{"NewV2"}, true}
	}
	D.header = decodeHeader(b)
	if msg := D.header.check(); msg != "" {
		D.f.Close()
		return nil, Error{msg, filename, 0, md.ErrBadHeader, []string{"NewV2"}, true}
	}
	if D.header.Frames > 0 {
		if err = D.checkSize(); err != nil {
			D.f.Close()
			return nil, errDecorate(err, "NewV2")
		}
		D.cursors = make([]cursor, D.header.MPIRanks)
		for i := range D.cursors {
			D.cursors[i] = cursor{D.header.dataStart(uint64(i)), 0}
		}
	}
	D.buf = make([]byte, D.header.AtomItemBytes)
	D.r = bufio.NewReaderSize(D.f, 1<<16)
	D.pos = GlobalHeaderBytes
	D.readable = true
	return D, nil
}

//checkSize makes sure that the first item of every rank is in the file.
func (D *DecoderV2) checkSize() error {
	info, err := D.f.Stat()
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), D.filename, -1, md.ErrIO, []string{"checkSize"}, true}
	}
	end, ok := D.header.firstItemsEnd()
	if !ok || end > uint64(info.Size()) {
		return Error{fmt.Sprintf("%s: %d ranks, %d atoms per block, %d byte file", DataPastEnd, D.header.MPIRanks, D.header.BlockAtoms, info.Size()), D.filename, 0, md.ErrBadHeader, []string{"checkSize"}, true}
	}
	return nil
}

//Readable returns true if the object is ready to be read from
//false otherwise. It doesnt guarantee that there is something
//to read.
func (D *DecoderV2) Readable() bool {
	return D.readable
}

//Header returns the global header of the file.
func (D *DecoderV2) Header() GlobalHeader {
	return D.header
}

//Frames returns the number of frames in the file.
func (D *DecoderV2) Frames() uint32 {
	return D.header.Frames
}

//Len returns the number of atoms per frame declared in the header.
func (D *DecoderV2) Len() int {
	return int(D.header.AtomsNum)
}

//NextFrame moves the decoder to the start of the next frame, i.e. to the
//place where rank 0 stopped in the previous one. It returns false
//once all the frames in the file have been started.
func (D *DecoderV2) NextFrame() bool {
	if !D.readable || D.frame >= D.header.Frames {
		return false
	}
	D.rank = 0
	D.index = D.cursors[0].index
	if err := D.seek(int64(D.cursors[0].offset)); err != nil {
		D.err = errDecorate(err, "NextFrame")
		return false
	}
	D.frame++
	return true
}

//Next reads the next atom of the current frame. It returns false, nil
//when the last rank has finished the frame.
func (D *DecoderV2) Next() (bool, error) {
	if D.err != nil {
		return false, D.err
	}
	if !D.readable || D.frame == 0 {
		return false, nil
	}
	for {
		if err := D.trySwitchToNextBlock(); err != nil {
			D.err = errDecorate(err, "Next")
			return false, D.err
		}
		if _, err := io.ReadFull(D.r, D.buf); err != nil {
			D.err = ioError(D.filename, D.pos, ReadError, err, "Next")
			return false, D.err
		}
		D.pos += int64(len(D.buf))
		D.decode()
		if D.atom.Type != md.EndOfRank {
			return true, nil
		}
		last := uint64(D.rank)+1 >= D.header.MPIRanks
		if err := D.switchToNextRank(); err != nil {
			D.err = errDecorate(err, "Next")
			return false, D.err
		}
		if last {
			return false, nil //the ring is back at rank 0, this frame is over.
		}
	}
}

//Atom returns the atom read by the last successful call to Next.
func (D *DecoderV2) Atom() md.Atom {
	return D.atom
}

//Close closes the file, and marks the decoder as unreadable.
func (D *DecoderV2) Close() error {
	if !D.readable {
		return nil
	}
	D.readable = false
	return D.f.Close()
}

//decode fills the atom from the item in the buffer. Only the vectors
//enabled in the mask are present, in the order position, velocity, force.
func (D *DecoderV2) decode() {
	le := binary.LittleEndian
	D.atom = md.Atom{
		ID:   le.Uint64(D.buf[0:]),
		Type: int32(le.Uint32(D.buf[8:])),
	}
	c := idTypeBytes
	mask := D.header.Mask
	if mask&MaskPosition != 0 {
		D.atom.Pos = vector(D.buf[c:])
		c += vectorBytes
	}
	if mask&MaskVelocity != 0 {
		D.atom.Vel = vector(D.buf[c:])
		c += vectorBytes
	}
	if mask&MaskForce != 0 {
		D.atom.Force = vector(D.buf[c:])
	}
}

func vector(b []byte) [3]float64 {
	le := binary.LittleEndian
	return [3]float64{
		math.Float64frombits(le.Uint64(b[0:])),
		math.Float64frombits(le.Uint64(b[8:])),
		math.Float64frombits(le.Uint64(b[16:])),
	}
}

//trySwitchToNextBlock jumps over the blocks of the other ranks when the
//active rank has consumed its whole block, and counts the item about to be read.
func (D *DecoderV2) trySwitchToNextBlock() error {
	h := D.header
	if uint64(D.index) >= h.BlockAtoms {
		skip := h.BlockAtoms * (h.MPIRanks - 1) * h.AtomItemBytes
		if err := D.seek(D.pos + int64(skip)); err != nil {
			return err
		}
		D.index = 0
	}
	D.index++
	return nil
}

//switchToNextRank freezes the cursor of the active rank where it is, and
//resumes the next rank in the ring where it was left.
func (D *DecoderV2) switchToNextRank() error {
	D.cursors[D.rank] = cursor{uint64(D.pos), D.index}
	D.rank = uint32((uint64(D.rank) + 1) % D.header.MPIRanks)
	c := D.cursors[D.rank]
	D.index = c.index
	return D.seek(int64(c.offset))
}

func (D *DecoderV2) seek(offset int64) error {
	if offset == D.pos {
		return nil
	}
	if _, err := D.f.Seek(offset, io.SeekStart); err != nil {
		return ioError(D.filename, offset, SeekError, err, "seek")
	}
	D.r.Reset(D.f)
	D.pos = offset
	return nil
}
