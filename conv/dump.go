/*
 * dump.go, part of mdtools.
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

package conv

import (
	"fmt"
	"io"
	"math"
	"strconv"

	md "github.com/rmera/mdtools"
)

//DumpHeaderBytes is the space reserved before the atoms of each frame
//of a LAMMPS dump, for the timestep, atom count and box bounds.
const DumpHeaderBytes = 256

//dumpPad is added to each side of the bounding box, so no atom sits
//exactly on a boundary.
const dumpPad = 1e-4

//Dump writes LAMMPS dump files. The box is the bounding box of the
//atoms in each frame.
type Dump struct {
	p      *patcher
	prec   int
	header int64
	frame  uint32
	count  uint64
	lower  [3]float64
	upper  [3]float64
	line   []byte
}

//NewDump returns a sink that writes a LAMMPS dump to w, with prec
//decimal places for the positions.
func NewDump(w io.WriteSeeker, prec int) *Dump {
	return &Dump{p: newPatcher(w), prec: prec}
}

func (D *Dump) OnStart(output string) error {
	return errDecorate(D.p.start(), "OnStart")
}

func (D *Dump) BeforeFrame(frame uint32, output string) error {
	var err error
	D.frame = frame
	D.count = 0
	for i := range D.lower {
		D.lower[i] = math.MaxFloat64
		D.upper[i] = -math.MaxFloat64
	}
	D.header, err = D.p.reserve(DumpHeaderBytes)
	if err != nil {
		return errDecorate(err, "BeforeFrame")
	}
	if _, err = io.WriteString(D.p, "ITEM: ATOMS id type x y z\n"); err != nil {
		return writeError(err, "BeforeFrame")
	}
	return nil
}

func (D *Dump) OnAtom(a *md.Atom) error {
	b := strconv.AppendUint(D.line[:0], a.ID, 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(a.Type), 10)
	for i, f := range a.Pos {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, f, 'f', D.prec, 64)
		D.lower[i] = math.Min(D.lower[i], f)
		D.upper[i] = math.Max(D.upper[i], f)
	}
	b = append(b, '\n')
	D.line = b
	if _, err := D.p.Write(b); err != nil {
		return writeError(err, "OnAtom")
	}
	D.count++
	return nil
}

//AfterFrame writes the header of the frame that just finished. The
//padding goes at the end of the last line of box bounds.
func (D *Dump) AfterFrame() error {
	if D.count == 0 {
		D.lower, D.upper = [3]float64{}, [3]float64{}
	}
	text := fmt.Sprintf("ITEM: TIMESTEP\n%d\nITEM: NUMBER OF ATOMS\n%d\nITEM: BOX BOUNDS pp pp pp\n", D.frame, D.count)
	for i := range D.lower {
		if i > 0 {
			text += "\n"
		}
		text += fmt.Sprintf("%g %g", D.lower[i]-dumpPad, D.upper[i]+dumpPad)
	}
	h, err := fitHeader(text, DumpHeaderBytes, ' ')
	if err != nil {
		return errDecorate(err, "AfterFrame")
	}
	return errDecorate(D.p.patch(D.header, h), "AfterFrame")
}

func (D *Dump) Done() error {
	return errDecorate(D.p.flush(), "Done")
}
