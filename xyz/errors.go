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

package xyz

import (
	"fmt"

	md "github.com/rmera/mdtools"
)

//errDecorate adds the caller's name to errors that implement md.Error.
//Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	err2, ok := err.(md.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//Error is the error type for snapshot files. It fullfills md.Error and md.TrajError.
type Error struct {
	message  string
	filename string //empty if the snapshot doesn't come from a named file.
	line     int    //1-based, 0 if it doesn't apply.
	kind     error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	where := "snapshot"
	if err.filename != "" {
		where += " " + err.filename
	}
	if err.line > 0 {
		return fmt.Sprintf("%s line %d: %s: %s", where, err.line, err.kind, err.message)
	}
	return fmt.Sprintf("%s: %s: %s", where, err.kind, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Unwrap returns the kind of the error, one of the md.Err* values.
func (err Error) Unwrap() error { return err.kind }

//FileName returns the file associated to the error, if any.
func (err Error) FileName() string { return err.filename }

//Line returns the 1-based line where the error was found, or 0.
func (err Error) Line() int { return err.line }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "xyz" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TooFewFields    = "A particle needs at least id, type and 3 coordinates"
	BadTriplets     = "Extra fields must come in complete triplets"
	TooManyFields   = "Only velocity and force are allowed after the position"
	BadID           = "Unable to read the particle id"
	BadNumber       = "Unable to read a number"
	BadCount        = "Unable to read the atom count"
	ShortFile       = "The file ended before all the particles were read"
	DifferentCounts = "Snapshots have different numbers of particles"
	UnableToOpen    = "Unable to open file"
)

func parseError(line int, text, message string) Error {
	return Error{fmt.Sprintf("%s: %q", message, text), "", line, md.ErrParse, []string{"ReadSnapshot"}, true}
}
