/*
 * mdplot.go, part of mdtools.
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

//Package mdplot draws the results of the analyses in mdtools.
package mdplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/mdtools/histo"
)

//Profile plots the vacancy and occupant histograms side by side, one
//pair of bars per bin, and saves the plot to filename. The format is
//given by the extension (png, svg, pdf, eps...). Both histograms must
//have the same bins.
func Profile(vacancies, occupants *histo.Data, title, filename string) error {
	v, o := vacancies.View(), occupants.View()
	if len(v) != len(o) {
		return fmt.Errorf("mdplot.Profile: %d vacancy bins and %d occupant bins", len(v), len(o))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "lattice coordinate"
	p.Y.Label.Text = "count"
	if vacancies.Normalized() {
		p.Y.Label.Text = "fraction"
	}
	w := vg.Points(8)
	for i, h := range []*histo.Data{vacancies, occupants} {
		bars, err := plotter.NewBarChart(plotter.Values(h.View()), w)
		if err != nil {
			return fmt.Errorf("mdplot.Profile: %w", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(2*i-1) / 2
		p.Add(bars)
		p.Legend.Add(h.Name(), bars)
	}
	p.Legend.Top = true
	labels := make([]string, len(v))
	for i, c := range vacancies.Centers() {
		labels[i] = fmt.Sprintf("%.1f", c)
	}
	p.NominalX(labels...)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("mdplot.Profile: %w", err)
	}
	return nil
}
