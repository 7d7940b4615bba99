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

package md

import "errors"

//Kinds of failure. Errors returned by the packages in this module wrap
//one of these, so they can be told apart with errors.Is.
var (
	//ErrBadHeader means a malformed or truncated binary global header.
	ErrBadHeader = errors.New("bad global header")
	//ErrIO means a read or seek failure while decoding.
	ErrIO = errors.New("I/O failure")
	//ErrParse means a snapshot line that doesn't have the expected shape.
	ErrParse = errors.New("parse failure")
	//ErrBoxMismatch means a simulation box that doesn't hold the atoms given.
	ErrBoxMismatch = errors.New("box does not match atom count")
	//ErrBadAtomCount means an atom count that can't fill a BCC lattice.
	ErrBadAtomCount = errors.New("bad atom count for a BCC lattice")
	//ErrUnsupported means a format, standard or option this module doesn't handle.
	ErrUnsupported = errors.New("unsupported")
)
