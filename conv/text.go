/*
 * text.go, part of mdtools.
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
	"bufio"
	"io"
	"strconv"

	md "github.com/rmera/mdtools"
)

//TextHeader is the first line written by the text sink.
const TextHeader = "id\tsymbol\tinter_type\tx\ty\tz\tvx\tvy\tvz\tfx\tfy\tfz\n"

//Text writes every atom of every frame as a tab-separated line.
type Text struct {
	w    *bufio.Writer
	prec int
	line []byte
}

//NewText returns a sink that writes plain text to w, with prec
//decimal places for the vectors.
func NewText(w io.Writer, prec int) *Text {
	return &Text{w: bufio.NewWriterSize(w, 1<<20), prec: prec}
}

func (T *Text) OnStart(output string) error {
	if _, err := T.w.WriteString(TextHeader); err != nil {
		return writeError(err, "OnStart")
	}
	return nil
}

func (T *Text) BeforeFrame(frame uint32, output string) error { return nil }

func (T *Text) OnAtom(a *md.Atom) error {
	b := T.line[:0]
	b = strconv.AppendUint(b, a.ID, 10)
	b = append(b, '\t')
	b = append(b, a.Symbol()...)
	b = append(b, '\t')
	b = strconv.AppendInt(b, int64(a.InterType), 10)
	for _, v := range [][3]float64{a.Pos, a.Vel, a.Force} {
		for _, f := range v {
			b = append(b, '\t')
			b = strconv.AppendFloat(b, f, 'f', T.prec, 64)
		}
	}
	b = append(b, '\n')
	T.line = b
	if _, err := T.w.Write(b); err != nil {
		return writeError(err, "OnAtom")
	}
	return nil
}

func (T *Text) AfterFrame() error { return nil }

//Done flushes everything written so far.
func (T *Text) Done() error {
	if err := T.w.Flush(); err != nil {
		return writeError(err, "Done")
	}
	return nil
}
