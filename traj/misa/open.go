/*
 * open.go, part of mdtools.
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

package misa

import (
	md "github.com/rmera/mdtools"
)

//Names of the binary format standards, as given in the command line.
const (
	StandardCurrent = "current" //the legacy layout, one frame.
	StandardNext    = "next"    //the block-structured, multi-frame layout.
)

//Open returns a decoder for the given file and format standard.
//ranks is only used by the "current" standard, which doesn't store it.
func Open(filename, standard string, ranks int) (md.Decoder, error) {
	switch standard {
	case StandardCurrent:
		d, err := NewV1(filename, ranks)
		if err != nil {
			return nil, errDecorate(err, "Open")
		}
		return d, nil
	case StandardNext:
		d, err := NewV2(filename)
		if err != nil {
			return nil, errDecorate(err, "Open")
		}
		return d, nil
	}
	return nil, Error{UnknownStandard + ": " + standard, filename, -1, md.ErrUnsupported, []string{"Open"}, true}
}
