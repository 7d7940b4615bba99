/*
 * mdplot_test.go, part of mdtools.
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

package mdplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmera/mdtools/histo"
)

func TestProfile(Te *testing.T) {
	vac := histo.NewUniform("vacancies", 0, 10, 5, []float64{1, 1, 7})
	occ := histo.NewUniform("occupants", 0, 10, 5, []float64{1, 3, 3, 9})
	dir := Te.TempDir()
	for _, name := range []string{"profile.png", "profile.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(Te, Profile(vac, occ, "Defects", path))
		info, err := os.Stat(path)
		require.NoError(Te, err)
		require.NotZero(Te, info.Size())
	}
	vac.Normalize()
	occ.Normalize()
	require.NoError(Te, Profile(vac, occ, "Defect fractions", filepath.Join(dir, "fractions.svg")))
	require.Error(Te, Profile(vac, histo.NewUniform("x", 0, 10, 3, nil), "bad", filepath.Join(dir, "bad.png")))
}
