/*
 * analysis.go, part of mdtools.
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
	"io"
	"runtime"
	"sort"
	"sync"

	md "github.com/rmera/mdtools"
	v3 "github.com/rmera/mdtools/v3"
	"github.com/rmera/mdtools/xyz"
)

//Options tune the analysis.
type Options struct {
	//Workers is the number of goroutines for the mapping and sorting steps.
	//If it's less than 1, runtime.NumCPU() is used.
	Workers int
	//TrailingVacancies reports the empty sites after the last occupied one.
	//They are left out by default.
	TrailingVacancies bool
}

//Record is one line of the defect report: an empty site, or one of the
//atoms on a site with more than one.
type Record struct {
	Species string
	Site    [3]int
	Index   int64
	Pos     [3]float64 //zero for vacancies.
}

//IsVacancy returns true if the record is an empty site.
func (R *Record) IsVacancy() bool {
	return R.Species == md.VacancySymbol
}

//Result sums up an analysis.
type Result struct {
	Box           Box
	Vacancies     int //empty sites reported.
	Interstitials int //sites with more than one atom.
	Occupants     int //atoms on sites with more than one atom.
	Records       []Record
}

//occupant is an atom, by its position in the snapshot, and the site it
//belongs to.
type occupant struct {
	index int64
	atom  int
}

func (o occupant) less(p occupant) bool {
	if o.index != p.index {
		return o.index < p.index
	}
	return o.atom < p.atom
}

//Analyze assigns each particle of snap to a site of lat in the resolved
//box, and reports the empty sites and the atoms on sites holding more
//than one, in site order. Sites with exactly one atom are not reported.
//The report is written to out, unless it is nil. opts can be nil.
func Analyze(snap *xyz.Snapshot, box *BoxConfig, lat *Lattice, out io.Writer, opts *Options) (*Result, error) {
	if opts == nil {
		opts = new(Options)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	b := box.Box()
	if b.Sites() <= 0 {
		return nil, Error{ZeroBox, md.ErrBoxMismatch, []string{"Analyze"}, true}
	}
	var occ []occupant
	if coords := snap.Coords(); coords != nil {
		coords.SubVec(coords, box.Origin)
		occ = mapSites(coords, b, lat, workers)
	}
	parallelSort(occ, workers)
	var rw *ReportWriter
	if out != nil {
		rw = NewReportWriter(out)
		if err := rw.WriteHeader(); err != nil {
			return nil, errDecorate(err, "Analyze")
		}
	}
	res, err := scan(occ, snap.Particles, b, opts.TrailingVacancies, rw)
	if err != nil {
		return nil, errDecorate(err, "Analyze")
	}
	if rw != nil {
		if err := rw.Flush(); err != nil {
			return nil, errDecorate(err, "Analyze")
		}
	}
	return res, nil
}

//mapSites returns the site of each vector in coords, which are relative
//to the origin of the box. The vectors are split in ranges, one per goroutine.
func mapSites(coords *v3.Matrix, b Box, lat *Lattice, workers int) []occupant {
	n := coords.NVecs()
	occ := make([]occupant, n)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for from := 0; from < n; from += chunk {
		to := from + chunk
		if to > n {
			to = n
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				p := coords.Vec(i)
				c := b.Wrap(lat.Assign(p[0], p[1], p[2]))
				occ[i] = occupant{b.Index(c), i}
			}
		}(from, to)
	}
	wg.Wait()
	return occ
}

//minSortChunk is the smallest slice worth sorting in its own goroutine.
const minSortChunk = 4096

//parallelSort sorts occ by site, and by atom within each site. Chunks are
//sorted concurrently, and then merged pairwise, also concurrently.
func parallelSort(occ []occupant, workers int) {
	n := len(occ)
	if workers > n/minSortChunk {
		workers = n / minSortChunk
	}
	if workers < 2 {
		sort.Slice(occ, func(i, j int) bool { return occ[i].less(occ[j]) })
		return
	}
	chunk := (n + workers - 1) / workers
	bounds := []int{0}
	for i := chunk; i < n; i += chunk {
		bounds = append(bounds, i)
	}
	bounds = append(bounds, n)
	var wg sync.WaitGroup
	for i := 0; i+1 < len(bounds); i++ {
		wg.Add(1)
		go func(s []occupant) {
			defer wg.Done()
			sort.Slice(s, func(i, j int) bool { return s[i].less(s[j]) })
		}(occ[bounds[i]:bounds[i+1]])
	}
	wg.Wait()
	src, dst := occ, make([]occupant, n)
	for len(bounds) > 2 {
		next := []int{0}
		for i := 0; i+1 < len(bounds); i += 2 {
			if i+2 >= len(bounds) {
				copy(dst[bounds[i]:bounds[i+1]], src[bounds[i]:bounds[i+1]])
				next = append(next, bounds[i+1])
				continue
			}
			wg.Add(1)
			go func(a, m, b int) {
				defer wg.Done()
				merge(dst[a:b], src[a:m], src[m:b])
			}(bounds[i], bounds[i+1], bounds[i+2])
			next = append(next, bounds[i+2])
		}
		wg.Wait()
		src, dst = dst, src
		bounds = next
	}
	if &src[0] != &occ[0] {
		copy(occ, src)
	}
}

//merge puts the sorted slices a and b, in order, in dst.
func merge(dst, a, b []occupant) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j].less(a[i]) {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

//scan goes once over the sorted occupants. An atom on a site that is
//already taken is reported, along with the first atom on the site if it
//hasn't been reported yet. Each site skipped between two occupied sites
//is reported as a vacancy.
func scan(occ []occupant, parts []xyz.Particle, b Box, trailing bool, rw *ReportWriter) (*Result, error) {
	res := &Result{Box: b}
	emit := func(r Record) error {
		if r.IsVacancy() {
			res.Vacancies++
		} else {
			res.Occupants++
		}
		res.Records = append(res.Records, r)
		if rw == nil {
			return nil
		}
		return rw.Write(&r)
	}
	atomRecord := func(o occupant) Record {
		p := &parts[o.atom]
		return Record{Species: p.Type, Site: b.Coord(o.index), Index: o.index, Pos: p.Pos}
	}
	vacancies := func(from, to int64) error {
		for s := from; s < to; s++ {
			if err := emit(Record{Species: md.VacancySymbol, Site: b.Coord(s), Index: s}); err != nil {
				return err
			}
		}
		return nil
	}
	prev := int64(-1)
	var draft occupant
	isDraft := false
	for _, o := range occ {
		switch {
		case o.index == prev:
			if isDraft {
				res.Interstitials++
				if err := emit(atomRecord(draft)); err != nil {
					return nil, err
				}
				isDraft = false
			}
			if err := emit(atomRecord(o)); err != nil {
				return nil, err
			}
		default:
			//o.index > prev, as occ is sorted.
			if err := vacancies(prev+1, o.index); err != nil {
				return nil, err
			}
			draft = o
			isDraft = true
		}
		prev = o.index
	}
	if trailing {
		if err := vacancies(prev+1, b.Sites()); err != nil {
			return nil, err
		}
	}
	return res, nil
}
