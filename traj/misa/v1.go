/*
 * v1.go, part of mdtools.
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
	"os"

	md "github.com/rmera/mdtools"
)

//Layout of the "current" (legacy) MISA-MD binary format. The file holds a
//single frame. Each rank has a local header with its atom count, and its
//atoms are stored in blocks of v1BlockAtoms items, interleaved with the
//blocks of the other ranks.
const (
	v1HeaderBytes      = 128
	v1LocalHeaderBytes = 128
	v1BlockAtoms       = 1024
	v1ItemBytes        = 72 //id u64, step u64, type i32, inter type i16, 2 bytes padding, position and velocity.
	v1BlockBytes       = v1BlockAtoms * v1ItemBytes
)

//DecoderV1 reads the "current" MISA-MD binary format.
type DecoderV1 struct {
	f        *os.File
	filename string
	ranks    int
	counts   []uint64 //atoms in each rank
	rank     int
	i        uint64 //atoms of the active rank consumed so far
	buf      []byte //items read from the current block
	bufpos   int
	started  bool
	atom     md.Atom
	err      error
	readable bool
}

//NewV1 opens a "current" format file written by ranks MPI processes.
//The number of ranks is not stored in the file, so it must be given.
func NewV1(filename string, ranks int) (*DecoderV1, error) {
	if ranks <= 0 {
		return nil, Error{BadRanks, filename, -1, md.ErrUnsupported, []string{"NewV1"}, true}
	}
	var err error
	D := new(DecoderV1)
	D.filename = filename
	D.ranks = ranks
	D.f, err = os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), filename, -1, md.ErrIO, []string{"NewV1"}, true}
	}
	D.counts = make([]uint64, ranks)
	b := make([]byte, 8)
	for r := range D.counts {
		off := int64(v1HeaderBytes + v1LocalHeaderBytes*r)
		if n, err := D.f.ReadAt(b, off); n < len(b) {
			D.f.Close()
			return nil, Error{ShortHeader + ": " + err.Error(), filename, off, md.ErrBadHeader, []string{"NewV1"}, true}
		}
		D.counts[r] = binary.LittleEndian.Uint64(b)
	}
	D.readable = true
	return D, nil
}

//Readable returns true if the object is ready to be read from.
func (D *DecoderV1) Readable() bool {
	return D.readable
}

//Frames always returns 1, the legacy format stores only one frame per file.
func (D *DecoderV1) Frames() uint32 {
	return 1
}

//Len returns the total number of atoms in the file.
func (D *DecoderV1) Len() int {
	var n uint64
	for _, v := range D.counts {
		n += v
	}
	return int(n)
}

//NextFrame starts the only frame of the file. Later calls return false.
func (D *DecoderV1) NextFrame() bool {
	if !D.readable || D.started {
		return false
	}
	D.started = true
	D.rank = 0
	D.i = 0
	return true
}

//Next reads the next atom, going through the ranks in order.
func (D *DecoderV1) Next() (bool, error) {
	if D.err != nil {
		return false, D.err
	}
	if !D.readable || !D.started {
		return false, nil
	}
	for D.rank < D.ranks {
		if D.i < D.counts[D.rank] {
			if D.bufpos >= len(D.buf) {
				if err := D.fill(); err != nil {
					D.err = errDecorate(err, "Next")
					return false, D.err
				}
			}
			D.decode(D.buf[D.bufpos : D.bufpos+v1ItemBytes])
			D.bufpos += v1ItemBytes
			D.i++
			return true, nil
		}
		D.rank++
		D.i = 0
		D.buf = D.buf[:0]
		D.bufpos = 0
	}
	return false, nil
}

//fill reads what is left of the current block of the active rank, or what is
//left of the rank, whatever is less.
func (D *DecoderV1) fill() error {
	inBlock := D.i % v1BlockAtoms
	n := v1BlockAtoms - inBlock
	if left := D.counts[D.rank] - D.i; left < n {
		n = left
	}
	off := D.offset(D.rank, D.i)
	if cap(D.buf) < v1BlockBytes {
		D.buf = make([]byte, v1BlockBytes)
	}
	D.buf = D.buf[:n*v1ItemBytes]
	D.bufpos = 0
	//ReadAt may return io.EOF along with a full read at the end of the file.
	if n, err := D.f.ReadAt(D.buf, off); n < len(D.buf) {
		return ioError(D.filename, off+int64(n), ReadError, err, "fill")
	}
	return nil
}

//offset returns the position in the file of the ith atom of the given rank.
func (D *DecoderV1) offset(rank int, i uint64) int64 {
	h := uint64(v1HeaderBytes + v1LocalHeaderBytes*D.ranks)
	block := uint64(D.ranks)*(i/v1BlockAtoms) + uint64(rank)
	return int64(h + block*v1BlockBytes + (i%v1BlockAtoms)*v1ItemBytes)
}

func (D *DecoderV1) decode(b []byte) {
	le := binary.LittleEndian
	D.atom = md.Atom{
		ID:        le.Uint64(b[0:]),
		Type:      int32(le.Uint32(b[16:])),
		InterType: int16(le.Uint16(b[20:])),
		Pos:       vector(b[24:]),
		Vel:       vector(b[48:]),
	}
}

//Atom returns the atom read by the last successful call to Next.
func (D *DecoderV1) Atom() md.Atom {
	return D.atom
}

//Close closes the file, and marks the decoder as unreadable.
func (D *DecoderV1) Close() error {
	if !D.readable {
		return nil
	}
	D.readable = false
	return D.f.Close()
}
