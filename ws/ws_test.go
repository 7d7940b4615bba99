/*
 * ws_test.go, part of mdtools.
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
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	md "github.com/rmera/mdtools"
	"github.com/rmera/mdtools/xyz"
)

//jitter is a small displacement, different for each atom, that keeps it
//well inside its cell.
func jitter(i int) [3]float64 {
	return [3]float64{float64(i%5-2) / 100, float64(i%3-1) / 50, float64(i%7-3) / 100}
}

//perfect returns a snapshot with every site of a BCC box of the given
//size occupied by one atom, in site order.
func perfect(lat *Lattice, b Box) *xyz.Snapshot {
	S := &xyz.Snapshot{Comment: "perfect"}
	for i := int64(0); i < b.Sites(); i++ {
		p := lat.Position(b.Coord(i))
		j := jitter(int(i))
		S.Particles = append(S.Particles, xyz.Particle{
			ID:   uint32(i + 1),
			Type: "Fe",
			Pos:  [3]float64{p[0] + j[0], p[1] + j[1], p[2] + j[2]},
		})
	}
	return S
}

func TestCubeRoot(Te *testing.T) {
	for k := 1; k <= 200; k++ {
		require.Equal(Te, k, CubeRoot(k*k*k))
		require.Equal(Te, 0, CubeRoot(k*k*k+1))
	}
	require.Equal(Te, 4, CubeRoot(64))
	require.Equal(Te, 0, CubeRoot(65))
	require.Equal(Te, 0, CubeRoot(0))
	require.Equal(Te, 0, CubeRoot(-8))
}

func TestAssign(Te *testing.T) {
	L := DefaultLattice
	require.Equal(Te, [3]int{1, 0, 0}, L.Assign(1.377608, 1.501391, 1.471441))
	require.Equal(Te, [3]int{2, 0, 0}, L.Assign(2.772588, 0.056315, -0.044443))
	for k := -5; k <= 5; k++ {
		require.Equal(Te, [3]int{2 * k, 0, 0}, L.Assign(float64(k)*DefaultConstant, 0, 0))
	}
	b := Box{3, 2, 2}
	for i := int64(0); i < b.Sites(); i++ {
		c := b.Coord(i)
		p := L.Position(c)
		j := jitter(int(i))
		require.Equal(Te, c, L.Assign(p[0]+j[0], p[1]+j[1], p[2]+j[2]), "site %v", c)
	}
	//a point just past the bisector plane goes to the body centre.
	small := NewLattice(1)
	require.Equal(Te, [3]int{0, 0, 0}, small.Assign(0.24, 0.24, 0.24))
	require.Equal(Te, [3]int{1, 0, 0}, small.Assign(0.26, 0.26, 0.26))
	require.Equal(Te, [3]int{-1, -1, -1}, small.Assign(-0.26, -0.26, -0.26))
}

func TestIndexRoundTrip(Te *testing.T) {
	b := Box{3, 4, 5}
	seen := make(map[int64]bool)
	for z := 0; z < b.Z; z++ {
		for y := 0; y < b.Y; y++ {
			for x := 0; x < 2*b.X; x++ {
				c := [3]int{x, y, z}
				idx := b.Index(c)
				require.Equal(Te, c, b.Coord(idx))
				require.True(Te, idx >= 0 && idx < b.Sites())
				seen[idx] = true
			}
		}
	}
	require.Len(Te, seen, int(b.Sites()))
	require.Equal(Te, [3]int{5, 3, 0}, b.Wrap([3]int{-1, -1, 5}))
}

func TestScan(Te *testing.T) {
	parts := []xyz.Particle{
		{ID: 1, Type: "Fe", Pos: [3]float64{0.1, 0, 0}},
		{ID: 2, Type: "Cu", Pos: [3]float64{0.2, 0, 0}},
		{ID: 3, Type: "Fe", Pos: [3]float64{1, 1, 1}},
		{ID: 4, Type: "Fe", Pos: [3]float64{3, 1, 1}},
	}
	occ := []occupant{{0, 0}, {0, 1}, {1, 2}, {3, 3}}
	var out strings.Builder
	rw := NewReportWriter(&out)
	res, err := scan(occ, parts, Box{2, 1, 1}, false, rw)
	require.NoError(Te, err)
	require.NoError(Te, rw.Flush())
	require.Equal(Te, "Fe,0,0,0,0.1,0,0\nCu,0,0,0,0.2,0,0\nV,2,0,0,0,0,0\n", out.String())
	require.Equal(Te, 1, res.Vacancies)
	require.Equal(Te, 1, res.Interstitials)
	require.Equal(Te, 2, res.Occupants)

	//a third atom on the same site is reported only once.
	occ = []occupant{{0, 0}, {0, 1}, {0, 2}, {1, 3}}
	res, err = scan(occ, parts, Box{2, 1, 1}, true, nil)
	require.NoError(Te, err)
	require.Equal(Te, 3, res.Occupants)
	require.Equal(Te, 1, res.Interstitials)
	require.Equal(Te, 2, res.Vacancies) //sites 2 and 3, trailing
}

func TestParallelSort(Te *testing.T) {
	r := rand.New(rand.NewSource(42))
	occ := make([]occupant, 3*minSortChunk+17)
	for i := range occ {
		occ[i] = occupant{r.Int63n(5000), i}
	}
	ref := make([]occupant, len(occ))
	copy(ref, occ)
	sort.Slice(ref, func(i, j int) bool { return ref[i].less(ref[j]) })
	for _, w := range []int{1, 2, 3} {
		s := make([]occupant, len(occ))
		copy(s, occ)
		parallelSort(s, w)
		require.Equal(Te, ref, s, "%d workers", w)
	}
}

func TestResolve(Te *testing.T) {
	L := DefaultLattice
	cfg := new(BoxConfig)
	err := Resolve(15, nil, L, cfg)
	require.True(Te, errors.Is(err, md.ErrBadAtomCount))

	cube := perfect(L, Box{2, 2, 2})
	require.Equal(Te, 16, cube.Len())
	cfg = new(BoxConfig)
	require.NoError(Te, Resolve(cube.Len(), cube.Coords(), L, cfg))
	require.Equal(Te, Box{2, 2, 2}, cfg.Resolved)

	slab := perfect(L, Box{2, 3, 1})
	cfg = new(BoxConfig)
	require.NoError(Te, Resolve(slab.Len(), slab.Coords(), L, cfg))
	require.Equal(Te, Box{2, 3, 1}, cfg.Resolved)

	cfg = &BoxConfig{Size: []int{2, 2, 3}, Start: []float64{1, 2, 3}}
	require.NoError(Te, Resolve(16, nil, L, cfg))
	require.Equal(Te, Box{2, 2, 3}, cfg.Resolved)
	require.Equal(Te, [3]float64{1, 2, 3}, cfg.Origin)
	cfg.Policy = PolicyFail
	require.True(Te, errors.Is(Resolve(16, nil, L, cfg), md.ErrBoxMismatch))

	cfg = &BoxConfig{Size: []int{0, 2, 2}}
	require.True(Te, errors.Is(Resolve(16, nil, L, cfg), md.ErrBoxMismatch))
	cfg = &BoxConfig{Size: []int{2, 2}}
	require.Error(Te, Resolve(16, nil, L, cfg))
	//no size, not a cube, no coordinates.
	require.True(Te, errors.Is(Resolve(12, nil, L, new(BoxConfig)), md.ErrBoxMismatch))
}

func TestOriginShift(Te *testing.T) {
	L := DefaultLattice
	origin := [3]float64{10 * L.Constant(), -4 * L.Constant(), 7 * L.Constant()}
	slab := perfect(L, Box{2, 3, 1})
	for i := range slab.Particles {
		for j := range origin {
			slab.Particles[i].Pos[j] += origin[j]
		}
	}
	coords := slab.Coords()
	before := coords.Vec(5)
	cfg := &BoxConfig{Start: origin[:]}
	require.NoError(Te, Resolve(slab.Len(), coords, L, cfg))
	require.Equal(Te, Box{2, 3, 1}, cfg.Resolved)
	require.Equal(Te, before, coords.Vec(5)) //the caller's coordinates are left alone.
	res, err := Analyze(slab, cfg, L, nil, nil)
	require.NoError(Te, err)
	require.Zero(Te, res.Vacancies)
	require.Zero(Te, res.Occupants)
	require.Equal(Te, origin[0]+jitter(0)[0], slab.Particles[0].Pos[0])
}

func TestAnalyzeEndToEnd(Te *testing.T) {
	L := DefaultLattice
	snap := perfect(L, Box{2, 2, 2})
	//the atom on the corner site (1,1,1) moves next to the one at the origin.
	moved := int(Box{2, 2, 2}.Index([3]int{2, 1, 1}))
	snap.Particles[moved].Pos = [3]float64{0.01, 0.02, 0}
	cfg := new(BoxConfig)
	require.NoError(Te, Resolve(snap.Len(), snap.Coords(), L, cfg))
	var out strings.Builder
	res, err := Analyze(snap, cfg, L, &out, &Options{Workers: 3})
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(Te, []string{
		"# species,lat_x,lat_y,lat_z,x,y,z",
		"Fe,0,0,0,-0.02,-0.02,-0.03",
		"Fe,0,0,0,0.01,0.02,0",
		"V,2,1,1,0,0,0",
	}, lines)
	require.Equal(Te, 1, res.Vacancies)
	require.Equal(Te, 1, res.Interstitials)
	require.Equal(Te, 2, res.Occupants)

	//the empty site is the last one: only reported on request.
	snap = perfect(L, Box{2, 2, 2})
	snap.Particles[15].Pos = snap.Particles[0].Pos
	res, err = Analyze(snap, cfg, L, nil, nil)
	require.NoError(Te, err)
	require.Equal(Te, 0, res.Vacancies)
	res, err = Analyze(snap, cfg, L, nil, &Options{TrailingVacancies: true})
	require.NoError(Te, err)
	require.Equal(Te, 1, res.Vacancies)
	require.Equal(Te, int64(15), res.Records[len(res.Records)-1].Index)
}

func TestAnalyzeLarge(Te *testing.T) {
	L := DefaultLattice
	b := Box{16, 16, 16}
	snap := perfect(L, b)
	snap.Particles[100].Pos = snap.Particles[5000].Pos
	snap.Particles[7000].Pos = snap.Particles[5000].Pos
	cfg := &BoxConfig{Size: []int{16, 16, 16}}
	require.NoError(Te, Resolve(snap.Len(), snap.Coords(), L, cfg))
	one, err := Analyze(snap, cfg, L, nil, &Options{Workers: 1})
	require.NoError(Te, err)
	many, err := Analyze(snap, cfg, L, nil, &Options{Workers: 4})
	require.NoError(Te, err)
	require.Equal(Te, one, many)
	require.Equal(Te, 2, one.Vacancies)
	require.Equal(Te, 1, one.Interstitials)
	require.Equal(Te, 3, one.Occupants)

	vac, occ, err := Profile(one, 2, 4)
	require.NoError(Te, err)
	require.Equal(Te, 2, vac.Total())
	require.Equal(Te, 3, occ.Total())
	require.Len(Te, vac.View(), 4)
	_, _, err = Profile(one, 3, 4)
	require.Error(Te, err)
}

func TestConfig(Te *testing.T) {
	C, err := ReadConfigString(ExampleConfigFile)
	require.NoError(Te, err)
	require.Equal(Te, DefaultConstant, C.LatticeConstant)
	require.Equal(Te, 20, C.ProfileBins)
	bc, err := C.BoxConfig()
	require.NoError(Te, err)
	require.Empty(Te, bc.Size)
	require.Equal(Te, PolicyWarn, bc.Policy)

	C, err = ReadConfigString("[Analysis]\nBoxSize = 2 3 4\nBoxStart = 0 0.5 1\nMismatch = fail\nWorkers = 2\nTrailingVacancies = true\nProfileNormalize = true\n")
	require.NoError(Te, err)
	bc, err = C.BoxConfig()
	require.NoError(Te, err)
	require.Equal(Te, []int{2, 3, 4}, bc.Size)
	require.Equal(Te, []float64{0, 0.5, 1}, bc.Start)
	require.Equal(Te, PolicyFail, bc.Policy)
	require.Equal(Te, &Options{Workers: 2, TrailingVacancies: true}, C.Options())
	require.Equal(Te, DefaultConstant, C.Lattice().Constant())
	require.True(Te, C.ProfileNormalize)

	for _, bad := range []string{
		"[Analysis]\nMismatch = sometimes\n",
		"[Analysis]\nBoxSize = 2 3\n",
		"[Analysis]\nLatticeConstant = -1\n",
		"[Analysis]\nProfileAxis = 3\n",
		"[Analysis]\nNoSuchThing = 3\n",
	} {
		_, err = ReadConfigString(bad)
		require.Error(Te, err, bad)
	}
}
