/*
 * errors.go, part of mdtools.
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
	"fmt"

	md "github.com/rmera/mdtools"
)

//errDecorate is a helper function that asserts that the error is
//implements md.Error and decorates the error with the caller's name before returning it.
//Errors that don't implement md.Error are returned unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(md.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for MISA-MD binary trajectory errors. It fullfills md.Error and md.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	offset   int64  //byte offset in the file, -1 if it doesn't apply.
	kind     error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.offset >= 0 {
		return fmt.Sprintf("MISA-MD binary file %s error at byte %d: %s: %s", err.filename, err.offset, err.kind, err.message)
	}
	return fmt.Sprintf("MISA-MD binary file %s error: %s: %s", err.filename, err.kind, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Unwrap returns the kind of the error, one of the md.Err* values.
func (err Error) Unwrap() error { return err.kind }

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Offset returns the byte offset where the error was found, or -1.
func (err Error) Offset() int64 { return err.offset }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "misa" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen    = "Unable to open file"
	ShortHeader     = "Global header is shorter than expected"
	WrongHeaderSize = "Global header size doesn't match the layout"
	ShortSelfSize   = "Header region is smaller than the global header"
	DataPastEnd     = "Data region declared by the header doesn't fit in the file"
	NoRanks         = "Global header declares no MPI ranks"
	NoBlockAtoms    = "Global header declares empty blocks"
	UnknownMask     = "Unknown bits in the field mask"
	WrongItemSize   = "Atom item size doesn't match the field mask"
	ReadError       = "Error reading atom"
	SeekError       = "Error moving in the file"
	UnknownStandard = "Unknown binary format standard"
	BadRanks        = "The number of ranks must be positive"
)

func ioError(filename string, offset int64, message string, err error, caller string) Error {
	return Error{fmt.Sprintf("%s: %v", message, err), filename, offset, md.ErrIO, []string{caller}, true}
}
