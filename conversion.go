/*
 * conversion.go, part of mdtools.
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

package md

import "fmt"

//Convert reads every frame of d and feeds the atoms to s. The end-of-rank
//markers never reach the sink. A file that ends before all the frames its
//header declares is an error. d is closed when Convert returns.
func Convert(d Decoder, s Sink, output string) (err error) {
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err = s.OnStart(output); err != nil {
		return fmt.Errorf("Convert: %w", err)
	}
	frames := d.Frames()
	for frame := uint32(0); frame < frames; frame++ {
		if !d.NextFrame() {
			_, err = d.Next()
			if err == nil {
				err = ErrIO
			}
			return fmt.Errorf("Convert: frame %d of %d could not be started: %w", frame, frames, err)
		}
		if err = s.BeforeFrame(frame, output); err != nil {
			return fmt.Errorf("Convert: frame %d: %w", frame, err)
		}
		for {
			ok, err := d.Next()
			if err != nil {
				return fmt.Errorf("Convert: frame %d: %w", frame, err)
			}
			if !ok {
				break
			}
			atom := d.Atom()
			if atom.Type == EndOfRank {
				continue
			}
			if err = s.OnAtom(&atom); err != nil {
				return fmt.Errorf("Convert: frame %d: %w", frame, err)
			}
		}
		if err = s.AfterFrame(); err != nil {
			return fmt.Errorf("Convert: frame %d: %w", frame, err)
		}
	}
	if err = s.Done(); err != nil {
		return fmt.Errorf("Convert: %w", err)
	}
	return nil
}
