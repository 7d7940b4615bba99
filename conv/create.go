/*
 * create.go, part of mdtools.
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

package conv

import (
	"io"
	"os"

	md "github.com/rmera/mdtools"
)

//Output formats understood by Create.
const (
	FormatXYZ  = "xyz"
	FormatText = "text"
	FormatDump = "dump"
)

//Create creates (or truncates) filename and returns a sink that writes
//the given format to it, with prec decimal places. The returned closer
//must be closed after the conversion.
func Create(format, filename string, prec int) (md.Sink, io.Closer, error) {
	switch format {
	case FormatXYZ, FormatText, FormatDump:
	default:
		return nil, nil, Error{UnknownFormat + ": " + format, filename, md.ErrUnsupported, []string{"Create"}, true}
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), filename, md.ErrIO, []string{"Create"}, true}
	}
	switch format {
	case FormatXYZ:
		return NewXYZ(f, prec), f, nil
	case FormatDump:
		return NewDump(f, prec), f, nil
	}
	return NewText(f, prec), f, nil
}
