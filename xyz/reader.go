/*
 * reader.go, part of mdtools.
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

package xyz

import (
	"bufio"
	"errors"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	md "github.com/rmera/mdtools"
)

//maxPrealloc is the most particle lines allocated before they are read.
const maxPrealloc = 1 << 16

//Reader reads snapshots from a stream. Several snapshots can be read,
//one after the other, from the same stream.
type Reader struct {
	r    *bufio.Reader
	line int //lines consumed so far
	//Workers is the number of goroutines that parse particle lines.
	//If it's less than 1, runtime.NumCPU() is used.
	Workers int
}

//NewReader returns a Reader for r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1<<20)}
}

//readLine returns the next line without its line break. It returns io.EOF
//only if there was nothing left to read.
func (R *Reader) readLine() (string, error) {
	s, err := R.r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	R.line++
	return strings.TrimRight(s, "\r\n"), nil
}

//ReadSnapshot reads the next snapshot: a line with the number of
//particles, a comment line and the particle lines. The particle lines are
//parsed concurrently, but they keep the file order. It returns io.EOF if
//the stream has no more snapshots.
func (R *Reader) ReadSnapshot() (*Snapshot, error) {
	first, err := R.readLine()
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, Error{err.Error(), "", R.line + 1, md.ErrIO, []string{"ReadSnapshot"}, true}
	}
	start := R.line
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || n < 0 {
		return nil, parseError(R.line, first, BadCount)
	}
	S := new(Snapshot)
	if S.Comment, err = R.readLine(); err != nil {
		return nil, R.shortFile(err)
	}
	//the count is not trusted until the lines are there.
	lines := make([]string, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		l, err := R.readLine()
		if err != nil {
			return nil, R.shortFile(err)
		}
		lines = append(lines, l)
	}
	S.Particles = make([]Particle, len(lines))
	if err = R.parse(lines, S.Particles, start+2); err != nil {
		return nil, err
	}
	return S, nil
}

func (R *Reader) shortFile(err error) error {
	if err == io.EOF {
		return parseError(R.line+1, "", ShortFile)
	}
	return Error{err.Error(), "", R.line + 1, md.ErrIO, []string{"ReadSnapshot"}, true}
}

//parse fills dst with the particles in lines, the first of which is line
//number first of the file. Each worker gets its own range of the slices.
func (R *Reader) parse(lines []string, dst []Particle, first int) error {
	workers := R.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers == 0 {
		return nil
	}
	errs := make([]error, workers)
	chunk := (len(lines) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from, to := w*chunk, (w+1)*chunk
		if to > len(lines) {
			to = len(lines)
		}
		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				p, err := ParseParticle(lines[i])
				if err != nil {
					var perr Error
					msg := err.Error()
					if errors.As(err, &perr) {
						msg = perr.message
					}
					errs[w] = parseError(first+i, lines[i], msg)
					return
				}
				dst[i] = p
			}
		}(w, from, to)
	}
	wg.Wait()
	//workers go in file order, so the first error is the earliest line.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

//ReadFile reads the first snapshot in the file, which can be compressed
//(see Open).
func ReadFile(filename string) (*Snapshot, error) {
	f, err := Open(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	defer f.Close()
	S, err := NewReader(f).ReadSnapshot()
	if err == io.EOF {
		return nil, Error{ShortFile, filename, 1, md.ErrParse, []string{"ReadFile"}, true}
	}
	if err != nil {
		var e Error
		if errors.As(err, &e) {
			e.filename = filename
			err = e
		}
		return nil, errDecorate(err, "ReadFile")
	}
	return S, nil
}
