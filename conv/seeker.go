/*
 * seeker.go, part of mdtools.
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
	"bufio"
	"bytes"
	"fmt"
	"io"

	md "github.com/rmera/mdtools"
)

//patcher buffers writes to a seekable stream, keeping track of the
//position, so space reserved early can be filled in later.
type patcher struct {
	ws  io.WriteSeeker
	w   *bufio.Writer
	pos int64
}

func newPatcher(ws io.WriteSeeker) *patcher {
	return &patcher{ws: ws, w: bufio.NewWriterSize(ws, 1<<20)}
}

//start reads the current position of the underlying stream.
func (P *patcher) start() error {
	pos, err := P.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return writeError(err, "start")
	}
	P.pos = pos
	return nil
}

func (P *patcher) Write(b []byte) (int, error) {
	n, err := P.w.Write(b)
	P.pos += int64(n)
	return n, err
}

//reserve writes size blank bytes and returns the offset where they start.
func (P *patcher) reserve(size int) (int64, error) {
	at := P.pos
	if _, err := P.Write(bytes.Repeat([]byte{' '}, size)); err != nil {
		return 0, writeError(err, "reserve")
	}
	return at, nil
}

//patch overwrites the bytes at offset at with b, and goes back to the end.
func (P *patcher) patch(at int64, b []byte) error {
	if err := P.w.Flush(); err != nil {
		return writeError(err, "patch")
	}
	if _, err := P.ws.Seek(at, io.SeekStart); err != nil {
		return writeError(err, "patch")
	}
	if _, err := P.ws.Write(b); err != nil {
		return writeError(err, "patch")
	}
	if _, err := P.ws.Seek(P.pos, io.SeekStart); err != nil {
		return writeError(err, "patch")
	}
	return nil
}

func (P *patcher) flush() error {
	if err := P.w.Flush(); err != nil {
		return writeError(err, "flush")
	}
	return nil
}

//fitHeader pads text up to size bytes with fill, ending with a newline.
//text must leave room for at least the newline.
func fitHeader(text string, size int, fill byte) ([]byte, error) {
	if len(text) >= size {
		return nil, Error{fmt.Sprintf("%s: %d bytes needed, %d available", HeaderTooLong, len(text)+1, size), "", md.ErrUnsupported, []string{"fitHeader"}, true}
	}
	b := bytes.Repeat([]byte{fill}, size)
	copy(b, text)
	b[size-1] = '\n'
	return b, nil
}
