/*
 * profile.go, part of mdtools.
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
	"github.com/rmera/mdtools/histo"
)

//Profile returns histograms of the vacancies and of the atoms on
//multiply occupied sites, along the given axis of the box, in lattice
//coordinates.
func Profile(res *Result, axis, bins int) (vacancies, occupants *histo.Data, err error) {
	if axis < 0 || axis > 2 {
		return nil, nil, Error{fmt.Sprintf("%s: %d", BadAxis, axis), md.ErrUnsupported, []string{"Profile"}, true}
	}
	extent := [3]int{2 * res.Box.X, res.Box.Y, res.Box.Z}[axis]
	var vac, occ []float64
	for i := range res.Records {
		r := &res.Records[i]
		if r.IsVacancy() {
			vac = append(vac, float64(r.Site[axis]))
		} else {
			occ = append(occ, float64(r.Site[axis]))
		}
	}
	vacancies = histo.NewUniform("vacancies", 0, float64(extent), bins, vac)
	occupants = histo.NewUniform("occupants", 0, float64(extent), bins, occ)
	return vacancies, occupants, nil
}
