/*
 * gocoords.go, part of mdtools.
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

package v3

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//SubVec subtracts vec from each vector of A, putting the result on the received.
//F and A can be the same matrix.
func (F *Matrix) SubVec(A *Matrix, vec [3]float64) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || ar != fr {
		panic(mat.ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec[j])
		}
	}
}

//Bounds returns the lower and upper corners of the axis-aligned box
//that contains all the vectors in F. F must have at least one vector.
func (F *Matrix) Bounds() (lower, upper [3]float64) {
	col := make([]float64, F.NVecs())
	for j := 0; j < 3; j++ {
		col = F.Col(col, j)
		lower[j] = floats.Min(col)
		upper[j] = floats.Max(col)
	}
	return lower, upper
}
