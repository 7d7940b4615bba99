/*
 * histo.go, part of mdtools.
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
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a 1-D histogram. Bin i counts the values v with
//dividers[i] <= v < dividers[i+1]. Values outside the dividers are omitted.
//It marshals to JSON with its name, dividers and bins.
type Data struct {
	name       string
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Name       string    `json:"name"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Name:       D.name,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

//Name returns the name of the histogram
func (D *Data) Name() string {
	return D.name
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("%s Normalized: %v, TotalData: %d\n", D.name, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//NewData returns a new histogram with the given name and dividers, filled
//with rawdata, which can be nil. The dividers must be sorted, and at
//least 2. rawdata is sorted in place.
func NewData(name string, dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("histo.NewData: at least 2 dividers are needed")
	}
	d := new(Data)
	d.name = name
	//a copy, so nobody changes it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.reHisto(d.dividers, rawdata)
	}
	return d
}

//NewUniform returns a histogram with bins bins of the same width between
//min and max, filled with rawdata, which can be nil, and is sorted in place.
func NewUniform(name string, min, max float64, bins int, rawdata []float64) *Data {
	if bins < 1 {
		bins = 1
	}
	return NewData(name, floats.Span(make([]float64, bins+1), min, max), rawdata)
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize divides each bin by the number of values counted, so the
//bins add up to 1. It does nothing on an empty or normalized histogram.
func (D *Data) Normalize() {
	if D.total <= 0 || D.normalized {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

//Total returns the number of values counted in the histogram.
func (D *Data) Total() int {
	return D.total
}

//View returns the bins of the histogram, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Centers returns the middle point of each bin.
func (D *Data) Centers() []float64 {
	ret := make([]float64, len(D.histo))
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

//reHisto replaces the contents of the histogram with those for the
//given dividers and data. rawdata is sorted in place.
func (D *Data) reHisto(dividers, rawdata []float64) {
	if rawdata != nil {
		sort.Float64s(rawdata)
		//stat.Histogram panics instead of omitting the values that are off limits
		//so we remove them here before the call.
		maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(rawdata, dividers[0])
		rawdata = rawdata[mini:maxi]
	}
	D.dividers = dividers
	D.normalized = false
	D.total = len(rawdata) //as this could have been modified
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}
