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

package conv

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

//Error is the error type for the output sinks. It fullfills md.Error.
type Error struct {
	message  string
	filename string //the output file, if known.
	kind     error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("%s: %s", err.kind, err.message)
	}
	return fmt.Sprintf("output %s: %s: %s", err.filename, err.kind, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Unwrap returns the kind of the error.
func (err Error) Unwrap() error { return err.kind }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnknownFormat = "Unknown output format"
	HeaderTooLong = "Reserved header space is too small"
	WriteError    = "Error writing"
	UnableToOpen  = "Unable to create file"
)

func writeError(err error, caller string) Error {
	return Error{fmt.Sprintf("%s: %v", WriteError, err), "", md.ErrIO, []string{caller}, true}
}
