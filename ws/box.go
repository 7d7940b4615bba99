/*
 * box.go, part of mdtools.
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
	"log"

	md "github.com/rmera/mdtools"
	v3 "github.com/rmera/mdtools/v3"
)

//MismatchPolicy says what to do when the box doesn't hold the atoms given.
type MismatchPolicy int

const (
	PolicyWarn MismatchPolicy = iota //log the mismatch and go on.
	PolicyFail                       //return an error.
)

func (M MismatchPolicy) String() string {
	if M == PolicyFail {
		return "fail"
	}
	return "warn"
}

//ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (MismatchPolicy, error) {
	switch name {
	case "", "warn":
		return PolicyWarn, nil
	case "fail":
		return PolicyFail, nil
	}
	return PolicyWarn, Error{BadMismatch + ": " + name, md.ErrUnsupported, []string{"ParsePolicy"}, true}
}

//Box is the simulation box, counted in BCC unit cells, with 2 sites each.
type Box struct {
	X, Y, Z int
}

//Sites returns the number of lattice sites in the box.
func (B Box) Sites() int64 {
	return 2 * int64(B.X) * int64(B.Y) * int64(B.Z)
}

//Index returns the global index of the site with lattice coordinates c,
//which must be inside the box (see Wrap).
func (B Box) Index(c [3]int) int64 {
	return 2*int64(B.X)*(int64(c[2])*int64(B.Y)+int64(c[1])) + int64(c[0])
}

//Coord returns the lattice coordinates of the site with the given
//global index. It is the inverse of Index.
func (B Box) Coord(index int64) [3]int {
	xs := 2 * int64(B.X)
	rest := index / xs
	return [3]int{int(index % xs), int(rest % int64(B.Y)), int(rest / int64(B.Y))}
}

//Wrap returns the periodic image of c inside the box.
func (B Box) Wrap(c [3]int) [3]int {
	return [3]int{mod(c[0], 2*B.X), mod(c[1], B.Y), mod(c[2], B.Z)}
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

//BoxConfig is the box given by the user, if any, and the one used
//for the analysis.
type BoxConfig struct {
	Size     []int     //requested size in unit cells, empty or 3 values.
	Start    []float64 //requested origin of the box, empty or 3 values.
	Policy   MismatchPolicy
	Resolved Box
	Origin   [3]float64
}

//Box returns the resolved box.
func (C *BoxConfig) Box() Box {
	return C.Resolved
}

//CubeRoot returns the integer cube root of n, or 0 if n is not the
//cube of an integer.
func CubeRoot(n int) int {
	low, high := 1, n
	if high > 2097152 {
		high = 2097152 //the cube fits in an int64
	}
	for low <= high {
		mid := low + (high-low)/2
		c := mid * mid * mid
		switch {
		case c == n:
			return mid
		case c > n:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	return 0
}

//Resolve sets the box and the origin for a snapshot of atoms atoms with
//the given coordinates. The size requested in cfg is used if there is
//one. Otherwise, a cubic box is tried and, if atoms/2 is not a cube, the
//box is taken from the bounding box of coords, mapped on lat.
//An odd number of atoms, or a box with no sites along some axis, are
//always errors. A box that doesn't hold exactly atoms atoms is an error
//only with PolicyFail.
func Resolve(atoms int, coords *v3.Matrix, lat *Lattice, cfg *BoxConfig) error {
	if atoms%2 != 0 {
		return Error{fmt.Sprintf("%s: %d", OddAtoms, atoms), md.ErrBadAtomCount, []string{"Resolve"}, true}
	}
	switch len(cfg.Start) {
	case 0:
		cfg.Origin = [3]float64{}
	case 3:
		cfg.Origin = [3]float64{cfg.Start[0], cfg.Start[1], cfg.Start[2]}
	default:
		return Error{BadStartLen, md.ErrUnsupported, []string{"Resolve"}, true}
	}
	switch {
	case len(cfg.Size) == 3:
		cfg.Resolved = Box{cfg.Size[0], cfg.Size[1], cfg.Size[2]}
	case len(cfg.Size) != 0:
		return Error{BadSizeLen, md.ErrUnsupported, []string{"Resolve"}, true}
	case CubeRoot(atoms/2) != 0:
		n := CubeRoot(atoms / 2)
		cfg.Resolved = Box{n, n, n}
	default:
		var shifted *v3.Matrix
		if coords != nil {
			shifted = v3.Zeros(coords.NVecs())
			shifted.SubVec(coords, cfg.Origin)
		}
		b, err := boundingBox(shifted, lat)
		if err != nil {
			return errDecorate(err, "Resolve")
		}
		cfg.Resolved = b
	}
	b := cfg.Resolved
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return Error{fmt.Sprintf("%s: %v", ZeroBox, b), md.ErrBoxMismatch, []string{"Resolve"}, true}
	}
	if b.Sites() != int64(atoms) {
		err := Error{fmt.Sprintf("%s: %d %d %d cells hold %d atoms, not %d", WrongBox, b.X, b.Y, b.Z, b.Sites(), atoms), md.ErrBoxMismatch, []string{"Resolve"}, cfg.Policy == PolicyFail}
		if cfg.Policy == PolicyFail {
			return err
		}
		log.Printf("Warning: %s. Will go on with it", err)
	}
	return nil
}

//boundingBox returns the number of cells spanned by the coordinates,
//which must already be relative to the origin of the box.
//The span is counted inclusively, one more cell than the raw difference of
//the extreme lattice coordinates, and the x span is halved since x counts
//half cells. The raw difference would leave a full box one cell short on
//each axis, so it could never hold 2*x*y*z atoms.
func boundingBox(coords *v3.Matrix, lat *Lattice) (Box, error) {
	if coords == nil || coords.NVecs() == 0 {
		return Box{}, Error{NoCoordinates, md.ErrBoxMismatch, []string{"boundingBox"}, true}
	}
	lower, upper := coords.Bounds()
	lo := lat.Assign(lower[0], lower[1], lower[2])
	hi := lat.Assign(upper[0], upper[1], upper[2])
	var size [3]int
	for i := range size {
		span := hi[i] - lo[i]
		if i == 0 {
			span /= 2
		}
		if span >= 0 {
			size[i] = span + 1
		}
	}
	return Box{size[0], size[1], size[2]}, nil
}
