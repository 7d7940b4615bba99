/*
 * compress.go, part of mdtools.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	md "github.com/rmera/mdtools"
)

//Compression of a file, as given by its extension.
const (
	Plain = iota
	Zstd
	Gzip
	LZ4
	Deflate
)

//Compression returns the compression of filename, given by its extension:
//.zst or .zstd, .gz, .lz4 and .z. Anything else is plain text.
func Compression(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".lz4":
		return LZ4
	case ".z":
		return Deflate
	}
	return Plain
}

//readCloser closes the decompressor and then the file.
type readCloser struct {
	io.Reader
	dec io.Closer
	f   *os.File
}

func (R *readCloser) Close() error {
	var err error
	if R.dec != nil {
		err = R.dec.Close()
	}
	if err2 := R.f.Close(); err == nil {
		err = err2
	}
	return err
}

//writeCloser closes (and so flushes) the compressor and then the file.
type writeCloser struct {
	io.Writer
	enc io.Closer
	f   *os.File
}

func (W *writeCloser) Close() error {
	var err error
	if W.enc != nil {
		err = W.enc.Close()
	}
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	return err
}

//Open opens filename for reading, decompressing it if the extension
//says so.
func Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Open"}, true}
	}
	ret := &readCloser{Reader: f, f: f}
	switch Compression(filename) {
	case Zstd:
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Open"}, true}
		}
		rc := d.IOReadCloser()
		ret.Reader, ret.dec = rc, rc
	case Gzip:
		d, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Open"}, true}
		}
		ret.Reader, ret.dec = d, d
	case LZ4:
		ret.Reader = lz4.NewReader(f)
	case Deflate:
		d := flate.NewReader(f)
		ret.Reader, ret.dec = d, d
	}
	return ret, nil
}

//Create creates filename for writing, compressing what is written if the
//extension says so. The file is complete only after Close.
func Create(filename string) (io.WriteCloser, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Create"}, true}
	}
	ret := &writeCloser{Writer: f, f: f}
	switch Compression(filename) {
	case Zstd:
		e, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Create"}, true}
		}
		ret.Writer, ret.enc = e, e
	case Gzip:
		e := gzip.NewWriter(f)
		ret.Writer, ret.enc = e, e
	case LZ4:
		e := lz4.NewWriter(f)
		ret.Writer, ret.enc = e, e
	case Deflate:
		e, err := flate.NewWriter(f, flate.DefaultCompression)
		if err != nil {
			f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), filename, 0, md.ErrIO, []string{"Create"}, true}
		}
		ret.Writer, ret.enc = e, e
	}
	return ret, nil
}
