/*
 * atom.go, part of mdtools.
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

import "fmt"

//Type codes with a special meaning. They share a value in the files written by
//MISA-MD, but they mean different things, so they are kept apart here.
const (
	//EndOfRank marks the end of the real data of one rank in a binary frame.
	EndOfRank int32 = -1
	//VacancyType tags a synthetic record for an empty lattice site.
	VacancyType int32 = -1
)

//VacancySymbol is the species name used for empty lattice sites in reports.
const VacancySymbol = "V"

//Atom is one atom as stored in a MISA-MD binary trajectory.
//Vel and Force are only filled when the file carries them, they
//are zero otherwise.
type Atom struct {
	ID        uint64
	Type      int32
	InterType int16
	Pos       [3]float64
	Vel       [3]float64
	Force     [3]float64
}

//Symbol returns the element symbol for the atom's type code.
func (A *Atom) Symbol() string {
	return Symbol(A.Type)
}

func (A *Atom) String() string {
	return fmt.Sprintf("id: %d, type: %s, position: (%g, %g, %g), v:(%g, %g, %g)",
		A.ID, A.Symbol(), A.Pos[0], A.Pos[1], A.Pos[2], A.Vel[0], A.Vel[1], A.Vel[2])
}

//The type codes used by MISA-MD. The order is fixed by the simulation code.
var typeSymbol = map[int32]string{
	VacancyType: VacancySymbol,
	0:           "Fe",
	1:           "Cu",
	2:           "Ni",
}

//Symbol returns the element symbol for a MISA-MD type code, or "Unknown".
func Symbol(t int32) string {
	if s, ok := typeSymbol[t]; ok {
		return s
	}
	return "Unknown"
}
