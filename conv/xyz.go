/*
 * xyz.go, part of mdtools.
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
	"strconv"

	md "github.com/rmera/mdtools"
)

//XYZHeaderBytes is the space reserved at the beginning of each frame
//for the atom count and the comment line of the xyz format.
const XYZHeaderBytes = 128

//XYZ writes each frame in the xyz format. The atom count is only known
//once the frame is over, so it goes to space reserved before the atoms.
type XYZ struct {
	p      *patcher
	prec   int
	header int64 //offset of the header of the current frame
	count  uint64
	line   []byte
}

//NewXYZ returns a sink that writes xyz frames to w with prec decimal places.
func NewXYZ(w io.WriteSeeker, prec int) *XYZ {
	return &XYZ{p: newPatcher(w), prec: prec}
}

func (X *XYZ) OnStart(output string) error {
	return errDecorate(X.p.start(), "OnStart")
}

func (X *XYZ) BeforeFrame(frame uint32, output string) error {
	var err error
	X.count = 0
	X.header, err = X.p.reserve(XYZHeaderBytes)
	return errDecorate(err, "BeforeFrame")
}

func (X *XYZ) OnAtom(a *md.Atom) error {
	b := append(X.line[:0], a.Symbol()...)
	for _, f := range a.Pos {
		b = append(b, '\t')
		b = strconv.AppendFloat(b, f, 'f', X.prec, 64)
	}
	b = append(b, '\n')
	X.line = b
	if _, err := X.p.Write(b); err != nil {
		return writeError(err, "OnAtom")
	}
	X.count++
	return nil
}

//AfterFrame writes the atom count in the header of the frame. The
//comment line is filled with 'C's.
func (X *XYZ) AfterFrame() error {
	h, err := fitHeader(fmt.Sprintf("%d\n", X.count), XYZHeaderBytes, 'C')
	if err != nil {
		return errDecorate(err, "AfterFrame")
	}
	return errDecorate(X.p.patch(X.header, h), "AfterFrame")
}

func (X *XYZ) Done() error {
	return errDecorate(X.p.flush(), "Done")
}
