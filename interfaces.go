/*
 * interfaces.go, part of mdtools.
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

//Decoder is the interface for the binary trajectory formats written by MISA-MD.
//Both the legacy and the current layouts implement it, so conversion
//drivers don't need to know which one they are reading.
type Decoder interface {
	//Frames returns the number of frames stored in the file.
	Frames() uint32

	//NextFrame moves the decoder to the beginning of the next frame.
	//It returns false when all the frames have been consumed, or if the
	//frame can't be reached. In the latter case, the next call to Next
	//returns the error.
	NextFrame() bool

	//Next reads the next atom in the current frame. It returns
	//false, nil at the end of the frame. Any error is fatal for the
	//whole decoding.
	Next() (bool, error)

	//Atom returns the atom read by the last successful call to Next.
	Atom() Atom

	//Close releases the underlying file. The decoder can not be used after this.
	Close() error
}

//Sink receives the atoms of a trajectory while it is being decoded.
//The methods are called strictly in sequence: OnStart once, then,
//for each frame, BeforeFrame, OnAtom for each atom, and AfterFrame,
//and, at the end, Done.
type Sink interface {
	OnStart(output string) error
	BeforeFrame(frame uint32, output string) error
	OnAtom(a *Atom) error
	AfterFrame() error
	Done() error
}

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice resulting from the current call. An empty string adds nothing.
}

//TrajError is the interface for errors in trajectories and snapshots.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}
