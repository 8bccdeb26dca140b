/*
   ZXCore - ZX Spectrum 48K/128K emulator core
   Copyright (c) 2022, Alexander Vollschwitz

   This file is part of ZXCore.

   ZXCore is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   ZXCore is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with ZXCore. If not, see <http://www.gnu.org/licenses/>.
*/

package snapshot

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	log "github.com/sirupsen/logrus"
)

// file types recognized in file names
const (
	TypeZ80 = "z80"
	TypeSCR = "scr"
)

// compressors recognized in file names, mapped to canonical names
var compressors = map[string]string{
	"gz":   "gzip",
	"gzip": "gzip",
	"zip":  "zip",
	"7z":   "7z",
}

/*
	NewReader returns a reader for a snapshot file, decompressing it if
	necessary. Valid compressors are gzip, gz, zip, 7z, and the empty string
	for none. From archives, the first snapshot or screen file is read.
	Closing the reader closes r.
*/
func NewReader(r io.ReadCloser, compressor string) (*Reader, error) {

	c, ok := compressors[strings.ToLower(compressor)]
	if !ok && compressor != "" {
		r.Close()
		return nil, fmt.Errorf("unsupported compressor: %s", compressor)
	}

	var ret *Reader
	var err error

	switch c {
	case "gzip":
		ret, err = newGZipReader(r)
	case "zip", "7z":
		ret, err = newArchiveReader(r, c)
	default:
		ret = &Reader{source: r}
	}

	if err != nil {
		return nil, fmt.Errorf("cannot open %s compressed snapshot: %v", c, err)
	}

	log.WithFields(log.Fields{
		"compressor": ret.compressor,
		"name":       ret.name,
		"type":       ret.typ}).Debug("snapshot reader created")

	return ret, nil
}

// Reader reads the contents of a possibly compressed snapshot file.
type Reader struct {
	source  io.Reader
	closers []io.Closer
	//
	name       string
	typ        string
	compressor string
}

//
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.source.Read(p)
}

// Close closes the decompressor and the underlying source.
func (r *Reader) Close() error {

	if c, ok := r.source.(io.Closer); ok {
		r.closers = append([]io.Closer{c}, r.closers...)
	}

	var ret error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && ret == nil {
			ret = err
		}
	}
	r.closers = nil
	return ret
}

// Name returns the base name of the compressed file, if known.
func (r *Reader) Name() string {
	return r.name
}

// Type returns the type of the compressed file, if known.
func (r *Reader) Type() string {
	return r.typ
}

//
func (r *Reader) Compressor() string {
	return r.compressor
}

//
func newGZipReader(r io.ReadCloser) (*Reader, error) {

	gzr, err := gzip.NewReader(r)
	if err != nil {
		r.Close()
		return nil, err
	}

	ret := &Reader{source: gzr, closers: []io.Closer{r}, compressor: "gzip"}
	ret.name, ret.typ, _ = SplitNameTypeCompressor(gzr.Name)
	return ret, nil
}

// archiveEntry is a file in a zip or 7z archive.
type archiveEntry struct {
	name string
	open func() (io.ReadCloser, error)
}

// newArchiveReader reads the archive into memory and opens the first entry
// with a snapshot type. If there is none, the first entry is used.
func newArchiveReader(r io.ReadCloser, compressor string) (*Reader, error) {

	data, err := io.ReadAll(io.LimitReader(r, 8*MaxSize))
	r.Close()
	if err != nil {
		return nil, err
	}

	var entries []archiveEntry
	src := bytes.NewReader(data)

	if compressor == "7z" {
		zr, err := sevenzip.NewReader(src, src.Size())
		if err != nil {
			return nil, err
		}
		for _, f := range zr.File {
			if !f.FileInfo().IsDir() {
				entries = append(entries, archiveEntry{name: f.Name, open: f.Open})
			}
		}

	} else {
		zr, err := zip.NewReader(src, src.Size())
		if err != nil {
			return nil, err
		}
		for _, f := range zr.File {
			if !f.FileInfo().IsDir() {
				entries = append(entries, archiveEntry{name: f.Name, open: f.Open})
			}
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("empty archive")
	}

	pick := entries[0]
	for _, e := range entries {
		if _, typ, _ := SplitNameTypeCompressor(e.name); typ != "" {
			pick = e
			break
		}
	}

	if len(entries) > 1 {
		log.WithFields(log.Fields{
			"entries": len(entries),
			"using":   pick.name}).Warn("archive has more than one file")
	}

	rc, err := pick.open()
	if err != nil {
		return nil, err
	}

	ret := &Reader{source: rc, compressor: compressor}
	ret.name, ret.typ, _ = SplitNameTypeCompressor(pick.name)
	return ret, nil
}

/*
	SplitNameTypeCompressor splits a file name such as game.z80.gz into base
	name, file type, and compressor. Only known extensions are split off, so
	dots within the name are kept.
*/
func SplitNameTypeCompressor(file string) (name, typ, compressor string) {

	name = filepath.Base(filepath.FromSlash(file))

	for {
		ext := filepath.Ext(name)
		if ext == "" || ext == name {
			return name, typ, compressor
		}

		e := strings.ToLower(ext[1:])

		if e == TypeZ80 || e == TypeSCR {
			if typ != "" {
				return name, typ, compressor
			}
			typ = e

		} else if _, ok := compressors[e]; ok && compressor == "" && typ == "" {
			compressor = e

		} else {
			return name, typ, compressor
		}

		name = strings.TrimSuffix(name, ext)
	}
}
