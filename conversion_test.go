/*
 * conversion_test.go, part of mdtools.
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

package md

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

//sliceDecoder serves frames from memory.
type sliceDecoder struct {
	frames [][]Atom
	frame  int
	i      int
	closed bool
	fail   error
	//missing frames are declared but can't be reached, failing with lost.
	missing int
	lost    error
}

func (S *sliceDecoder) Frames() uint32 { return uint32(len(S.frames) + S.missing) }

func (S *sliceDecoder) NextFrame() bool {
	if S.frame >= len(S.frames) {
		S.fail = S.lost
		return false
	}
	S.frame++
	S.i = -1
	return true
}

func (S *sliceDecoder) Next() (bool, error) {
	if S.fail != nil {
		return false, S.fail
	}
	S.i++
	return S.i < len(S.frames[S.frame-1]), nil
}

func (S *sliceDecoder) Atom() Atom { return S.frames[S.frame-1][S.i] }

func (S *sliceDecoder) Close() error {
	S.closed = true
	return nil
}

type recordingSink struct {
	calls []string
	ids   []uint64
}

func (R *recordingSink) OnStart(output string) error {
	R.calls = append(R.calls, "start:"+output)
	return nil
}

func (R *recordingSink) BeforeFrame(frame uint32, output string) error {
	R.calls = append(R.calls, "before")
	return nil
}

func (R *recordingSink) OnAtom(a *Atom) error {
	R.ids = append(R.ids, a.ID)
	return nil
}

func (R *recordingSink) AfterFrame() error {
	R.calls = append(R.calls, "after")
	return nil
}

func (R *recordingSink) Done() error {
	R.calls = append(R.calls, "done")
	return nil
}

func TestConvertSkipsMarkers(Te *testing.T) {
	d := &sliceDecoder{frames: [][]Atom{
		{{ID: 1}, {ID: 2}, {ID: 0, Type: EndOfRank}, {ID: 3, Type: 1}},
		{{ID: 4}},
	}}
	s := new(recordingSink)
	require.NoError(Te, Convert(d, s, "out"))
	require.Equal(Te, []uint64{1, 2, 3, 4}, s.ids)
	require.Equal(Te, []string{"start:out", "before", "after", "before", "after", "done"}, s.calls)
	require.True(Te, d.closed)
}

func TestConvertPropagatesErrors(Te *testing.T) {
	d := &sliceDecoder{frames: [][]Atom{{{ID: 1}}}, fail: ErrIO}
	err := Convert(d, new(recordingSink), "out")
	require.True(Te, errors.Is(err, ErrIO))
	require.True(Te, d.closed)
}

func TestSymbols(Te *testing.T) {
	require.Equal(Te, "V", Symbol(VacancyType))
	require.Equal(Te, "Fe", Symbol(0))
	require.Equal(Te, "Ni", Symbol(2))
	require.Equal(Te, "Unknown", Symbol(7))
}

func TestConvertMissingFrames(Te *testing.T) {
	d := &sliceDecoder{frames: [][]Atom{{{ID: 1}}}, missing: 1, lost: ErrBadHeader}
	s := new(recordingSink)
	err := Convert(d, s, "out")
	require.True(Te, errors.Is(err, ErrBadHeader))
	require.NotContains(Te, s.calls, "done")
	require.True(Te, d.closed)

	d = &sliceDecoder{frames: [][]Atom{{{ID: 1}}}, missing: 2}
	err = Convert(d, new(recordingSink), "out")
	require.True(Te, errors.Is(err, ErrIO))
}
