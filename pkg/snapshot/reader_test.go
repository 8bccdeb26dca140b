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
	"io"
	"testing"
)

//
func TestSplitNameTypeCompressor(t *testing.T) {

	tests := []struct {
		file       string
		name       string
		typ        string
		compressor string
	}{
		{"game.z80", "game", "z80", ""},
		{"/repo/games/Game.Z80.gz", "Game", "z80", "gz"},
		{"screen.scr.7z", "screen", "scr", "7z"},
		{"archive.zip", "archive", "", "zip"},
		{"noext", "noext", "", ""},
		{"Manic.Miner.z80", "Manic.Miner", "z80", ""},
		{"games/v1.2.zip", "v1.2", "", "zip"},
	}

	for _, tc := range tests {
		n, typ, c := SplitNameTypeCompressor(tc.file)
		if n != tc.name || typ != tc.typ || c != tc.compressor {
			t.Fatalf("%s: got %q, %q, %q", tc.file, n, typ, c)
		}
	}
}

//
func TestGZipReader(t *testing.T) {

	payload := []byte("snapshot data")

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Name = "manic.z80"
	w.Write(payload)
	w.Close()

	r, err := NewReader(io.NopCloser(&buf), "gz")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Name() != "manic" || r.Type() != TypeZ80 || r.Compressor() != "gzip" {
		t.Fatalf("unexpected reader: %s, %s, %s", r.Name(), r.Type(),
			r.Compressor())
	}

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("payload differs")
	}
}

//
func TestZipReader(t *testing.T) {

	payload := []byte("another snapshot")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	readme, err := zw.Create("README.txt")
	if err != nil {
		t.Fatal(err)
	}
	readme.Write([]byte("instructions"))
	f, err := zw.Create("jetpac.z80")
	if err != nil {
		t.Fatal(err)
	}
	f.Write(payload)
	zw.Close()

	r, err := NewReader(io.NopCloser(&buf), "zip")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Name() != "jetpac" || r.Type() != TypeZ80 || r.Compressor() != "zip" {
		t.Fatalf("unexpected reader: %s, %s, %s", r.Name(), r.Type(),
			r.Compressor())
	}

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("payload differs")
	}

	if _, err := NewReader(io.NopCloser(&buf), "rar"); err == nil {
		t.Fatal("expected error for unsupported compressor")
	}
}
