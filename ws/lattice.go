/*
 * lattice.go, part of mdtools.
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

import "math"

//DefaultConstant is the lattice constant of BCC iron, in Angstrom.
const DefaultConstant = 2.85532

//offsets takes the corner site found by rounding to the body-centre site
//in the octant where the point is. The index has bit 0 set when the point
//is above the corner in x, bit 1 for y and bit 2 for z. x is doubled.
var offsets = [8][3]int{
	{-1, -1, -1},
	{1, -1, -1},
	{-1, 0, -1},
	{1, 0, -1},
	{-1, -1, 0},
	{1, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
}

//normals are the normal vectors of the planes that bisect the segment
//between a corner site and the body-centre site in each octant, in
//lattice units, with the same indexes as offsets. The planes are
//n.r + planeD = 0.
var normals = [8][3]float64{
	{-1, -1, -1},
	{1, -1, -1},
	{-1, 1, -1},
	{1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{-1, 1, 1},
	{1, 1, 1},
}

const planeD = -3.0 / 4.0

//Lattice assigns points to the sites of a BCC lattice with one corner
//at the origin.
type Lattice struct {
	constant float64
}

//NewLattice returns a BCC lattice with the given constant.
func NewLattice(constant float64) *Lattice {
	return &Lattice{constant: constant}
}

//DefaultLattice is the lattice of BCC iron.
var DefaultLattice = NewLattice(DefaultConstant)

//Constant returns the lattice constant.
func (L *Lattice) Constant() float64 {
	return L.constant
}

//Assign returns the lattice coordinates of the site whose Wigner-Seitz
//cell contains the point x, y, z. The x coordinate is doubled: corner
//sites have even x, and body-centre sites odd x.
func (L *Lattice) Assign(x, y, z float64) [3]int {
	p := [3]float64{x / L.constant, y / L.constant, z / L.constant}
	var c [3]int
	var delta [3]float64
	flag := 0
	for i, v := range p {
		r := math.Round(v)
		c[i] = int(r)
		delta[i] = v - r
		if delta[i] > 0 {
			flag |= 1 << uint(i)
		}
	}
	c[0] *= 2
	n := normals[flag]
	if n[0]*delta[0]+n[1]*delta[1]+n[2]*delta[2]+planeD >= 0 {
		//past the bisector plane, closer to the body centre.
		o := offsets[flag]
		c[0] += o[0]
		c[1] += o[1]
		c[2] += o[2]
	}
	return c
}

//Position returns the cartesian coordinates of the site with lattice
//coordinates c.
func (L *Lattice) Position(c [3]int) [3]float64 {
	half := 0.0
	if c[0]%2 != 0 {
		half = 0.5
	}
	x := math.Floor(float64(c[0]) / 2)
	return [3]float64{(x + half) * L.constant, (float64(c[1]) + half) * L.constant, (float64(c[2]) + half) * L.constant}
}
