/*
 * histo_test.go, part of mdtools.
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

package histo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData("test", []float64{0, 1, 2, 3, 4, 8}, rawdata)
	require.Equal(Te, []float64{2, 6, 2, 7, 9}, D.View())
	require.Equal(Te, 26, D.Total()) //8, 32 and 44 are off limits
	require.Equal(Te, []float64{0.5, 1.5, 2.5, 3.5, 6}, D.Centers())
	require.False(Te, D.Normalized())
	D.Normalize()
	require.True(Te, D.Normalized())
	require.InDelta(Te, 1.0, floats.Sum(D.View()), 1e-12)
	require.InDelta(Te, 9.0/26, D.View()[4], 1e-12)
	D.Normalize()
	require.InDelta(Te, 1.0, floats.Sum(D.View()), 1e-12)
	require.Contains(Te, D.String(), "TotalData: 26")
}

func TestUniform(Te *testing.T) {
	D := NewUniform("u", 0, 10, 5, []float64{0, 1.9, 2, 9.99, 10, -1})
	require.Equal(Te, []float64{2, 1, 0, 0, 1}, D.View())
	require.Equal(Te, []float64{1, 3, 5, 7, 9}, D.Centers())
	E := NewUniform("empty", 0, 1, 0, nil)
	require.Equal(Te, []float64{0}, E.View())
	E.Normalize()
	require.False(Te, E.Normalized())
}

func TestHistoJSON(Te *testing.T) {
	D := NewUniform("json", 0, 4, 4, []float64{1, 1, 3})
	j, err := json.Marshal(D)
	require.NoError(Te, err)
	var back struct {
		Name     string    `json:"name"`
		Total    int       `json:"total"`
		Dividers []float64 `json:"dividers"`
		Histo    []float64 `json:"histo"`
	}
	require.NoError(Te, json.Unmarshal(j, &back))
	require.Equal(Te, "json", back.Name)
	require.Equal(Te, 3, back.Total)
	require.Equal(Te, []float64{0, 1, 2, 3, 4}, back.Dividers)
	require.Equal(Te, []float64{0, 2, 0, 1}, back.Histo)
}
