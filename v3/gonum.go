/*
 * gonum.go, part of mdtools.
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

//All the *Vec functions operate on row vectors, i.e. the cartesian coordinates
//of one point in space.

package v3

import (
	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return r
}

//Vec copies the ith vector of F into an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//Col copies the ith column of F into dst, which is allocated if nil or too short.
func (F *Matrix) Col(dst []float64, i int) []float64 {
	r := F.NVecs()
	if len(dst) < r {
		dst = make([]float64, r)
	}
	return mat.Col(dst[:r], i, F.Dense)
}

const not3xXMatrix = "v3: the given matrix doesn't have 3 columns"
