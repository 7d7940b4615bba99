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

package ws

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

//Error is the error type for the defect analysis. It fullfills md.Error.
type Error struct {
	message  string
	kind     error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("ws: %s: %s", err.kind, err.message)
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

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	OddAtoms      = "A BCC lattice needs an even number of atoms"
	ZeroBox       = "The box has no sites along at least one axis"
	WrongBox      = "The box doesn't hold the number of atoms given"
	BadSizeLen    = "Box sizes need 3 values"
	BadStartLen   = "Box start needs 3 values"
	BadMismatch   = "Mismatch policy must be warn or fail"
	BadLattice    = "The lattice constant must be positive"
	BadAxis       = "Profile axis must be 0, 1 or 2"
	NoCoordinates = "Coordinates are needed to find the box size"
)
