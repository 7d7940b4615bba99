/*
 * report.go, part of mdtools.
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
	"encoding/csv"
	"io"
	"strconv"

	md "github.com/rmera/mdtools"
)

//ReportHeader are the column names of the defect report.
var ReportHeader = []string{"# species", "lat_x", "lat_y", "lat_z", "x", "y", "z"}

//ReportWriter writes defect records as comma-separated lines.
type ReportWriter struct {
	w      *csv.Writer
	fields []string
}

//NewReportWriter returns a ReportWriter that writes to w.
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: csv.NewWriter(w), fields: make([]string, len(ReportHeader))}
}

//WriteHeader writes the line with the column names.
func (R *ReportWriter) WriteHeader() error {
	if err := R.w.Write(ReportHeader); err != nil {
		return Error{err.Error(), md.ErrIO, []string{"WriteHeader"}, true}
	}
	return nil
}

//Write writes one record.
func (R *ReportWriter) Write(r *Record) error {
	R.fields[0] = r.Species
	for i := 0; i < 3; i++ {
		R.fields[1+i] = strconv.Itoa(r.Site[i])
		R.fields[4+i] = strconv.FormatFloat(r.Pos[i], 'g', -1, 64)
	}
	if err := R.w.Write(R.fields); err != nil {
		return Error{err.Error(), md.ErrIO, []string{"Write"}, true}
	}
	return nil
}

//Flush writes any buffered data to the underlying writer.
func (R *ReportWriter) Flush() error {
	R.w.Flush()
	if err := R.w.Error(); err != nil {
		return Error{err.Error(), md.ErrIO, []string{"Flush"}, true}
	}
	return nil
}
