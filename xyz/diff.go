/*
 * diff.go, part of mdtools.
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
	"math"
	"sort"

	md "github.com/rmera/mdtools"
)

//Mismatch is a pair of particles, one from each snapshot, with the same
//id but a different state.
type Mismatch struct {
	A, B Particle
}

func (M Mismatch) String() string {
	return fmt.Sprintf("id %d: %s %v %v / %s %v %v", M.A.ID, M.A.Type, M.A.Pos, M.A.Extra, M.B.Type, M.B.Pos, M.B.Extra)
}

//Diff compares two snapshots particle by particle, matched by id. Two
//particles differ if any component of position, velocity or force is
//tol or more apart. If box has 3 lengths, positions that are one box
//length apart in an axis are taken to be the same (periodic images).
//The snapshots are sorted by id in place.
func Diff(a, b *Snapshot, tol float64, box []float64) ([]Mismatch, error) {
	if a.Len() != b.Len() {
		return nil, Error{fmt.Sprintf("%s: %d and %d", DifferentCounts, a.Len(), b.Len()), "", 0, md.ErrParse, []string{"Diff"}, true}
	}
	sortByID(a.Particles)
	sortByID(b.Particles)
	var ret []Mismatch
	for i := range a.Particles {
		p, q := &a.Particles[i], &b.Particles[i]
		if p.ID != q.ID || !samePos(p.Pos, q.Pos, tol, box) || !near(p.Vel(), q.Vel(), tol) || !near(p.Force(), q.Force(), tol) {
			ret = append(ret, Mismatch{*p, *q})
		}
	}
	return ret, nil
}

func sortByID(p []Particle) {
	sort.SliceStable(p, func(i, j int) bool { return p[i].ID < p[j].ID })
}

func near(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) >= tol {
			return false
		}
	}
	return true
}

func samePos(a, b [3]float64, tol float64, box []float64) bool {
	periodic := len(box) == 3
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d < tol {
			continue
		}
		if periodic && math.Abs(d-box[i]) < tol {
			continue
		}
		return false
	}
	return true
}
