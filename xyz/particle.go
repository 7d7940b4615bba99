/*
 * particle.go, part of mdtools.
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
	"math"
	"strconv"
	"strings"

	md "github.com/rmera/mdtools"
	v3 "github.com/rmera/mdtools/v3"
)

//Particle is one line of a snapshot file: id type x y z [vx vy vz [fx fy fz]]
type Particle struct {
	ID    uint32
	Type  string
	Pos   [3]float64
	Extra []float64 //velocity and then force, when present.
}

//Vel returns the velocity of the particle, or zeros if the line had none.
func (P *Particle) Vel() [3]float64 {
	return P.triplet(0)
}

//Force returns the force on the particle, or zeros if the line had none.
func (P *Particle) Force() [3]float64 {
	return P.triplet(3)
}

func (P *Particle) triplet(from int) [3]float64 {
	var ret [3]float64
	if len(P.Extra) >= from+3 {
		copy(ret[:], P.Extra[from:from+3])
	}
	return ret
}

//ParseParticle parses a whitespace-separated particle line. The id may
//be written as a float, in which case it is truncated.
func ParseParticle(line string) (Particle, error) {
	var P Particle
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return P, Error{TooFewFields, "", 0, md.ErrParse, []string{"ParseParticle"}, true}
	}
	extra := len(fields) - 5
	if extra%3 != 0 {
		return P, Error{BadTriplets, "", 0, md.ErrParse, []string{"ParseParticle"}, true}
	}
	if extra > 6 {
		return P, Error{TooManyFields, "", 0, md.ErrParse, []string{"ParseParticle"}, true}
	}
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		f, err2 := strconv.ParseFloat(fields[0], 64)
		if err2 != nil || f < 0 || f > math.MaxUint32 {
			return P, Error{BadID + ": " + fields[0], "", 0, md.ErrParse, []string{"ParseParticle"}, true}
		}
		id = uint64(f)
	}
	P.ID = uint32(id)
	P.Type = fields[1]
	for i := 0; i < 3; i++ {
		if P.Pos[i], err = strconv.ParseFloat(fields[2+i], 64); err != nil {
			return P, Error{BadNumber + ": " + fields[2+i], "", 0, md.ErrParse, []string{"ParseParticle"}, true}
		}
	}
	if extra > 0 {
		P.Extra = make([]float64, extra)
		for i := range P.Extra {
			if P.Extra[i], err = strconv.ParseFloat(fields[5+i], 64); err != nil {
				return P, Error{BadNumber + ": " + fields[5+i], "", 0, md.ErrParse, []string{"ParseParticle"}, true}
			}
		}
	}
	return P, nil
}

//Snapshot is the whole content of one snapshot file, with the particles
//in file order.
type Snapshot struct {
	Comment   string
	Particles []Particle
}

//Len returns the number of particles in the snapshot.
func (S *Snapshot) Len() int {
	return len(S.Particles)
}

//Coords returns the positions of the particles as a matrix, or nil if
//there are no particles.
func (S *Snapshot) Coords() *v3.Matrix {
	if len(S.Particles) == 0 {
		return nil
	}
	ret := v3.Zeros(len(S.Particles))
	for i := range S.Particles {
		ret.SetVec(i, S.Particles[i].Pos)
	}
	return ret
}
