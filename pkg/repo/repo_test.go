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

package repo

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// minimal version 1 snapshot header, PC 0x8000
func testSnapshot() []byte {
	data := make([]byte, 30)
	data[6], data[7] = 0x00, 0x80
	return data
}

//
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

//
func readAll(t *testing.T, rc io.ReadCloser) []byte {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

//
func TestResolve(t *testing.T) {

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "games", "jetpac.z80"), []byte("jetpac"))

	rc, err := Resolve("repo://games/jetpac.z80", dir)
	if err != nil {
		t.Fatal(err)
	}
	if string(readAll(t, rc)) != "jetpac" {
		t.Fatal("unexpected repo content")
	}

	rc, err = Resolve("file://"+filepath.Join(dir, "games", "jetpac.z80"), "")
	if err != nil {
		t.Fatal(err)
	}
	if string(readAll(t, rc)) != "jetpac" {
		t.Fatal("unexpected file content")
	}

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path != "/jetpac.z80" {
				http.NotFound(w, req)
				return
			}
			w.Write([]byte("remote"))
		}))
	defer srv.Close()

	rc, err = Resolve(srv.URL+"/jetpac.z80", "")
	if err != nil {
		t.Fatal(err)
	}
	if string(readAll(t, rc)) != "remote" {
		t.Fatal("unexpected http content")
	}

	for _, ref := range []string{
		srv.URL + "/missing.z80",
		"repo://../outside.z80",
		"ftp://host/file.z80",
	} {
		if _, err := Resolve(ref, dir); err == nil {
			t.Fatalf("expected error for %s", ref)
		}
	}

	if _, err := Resolve("repo://games/jetpac.z80", ""); err == nil {
		t.Fatal("expected error without repository")
	}
}

//
func TestOpenCompressed(t *testing.T) {

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.z80")
	writeFile(t, file, testSnapshot())

	rd, err := Open(file)
	if err != nil {
		t.Fatal(err)
	}
	if rd.Compressor() != "" || len(readAll(t, rd)) != 30 {
		t.Fatal("unexpected reader")
	}

	if _, err := Open(filepath.Join(dir, "broken.z80.gz")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

//
func TestIndex(t *testing.T) {

	dir := t.TempDir()
	repoDir := filepath.Join(dir, "repo")
	base := filepath.Join(dir, "index")

	writeFile(t, filepath.Join(repoDir, "games", "Manic_Miner.z80"),
		testSnapshot())
	writeFile(t, filepath.Join(repoDir, "games", "Jet-Set Willy.z80"),
		testSnapshot())
	writeFile(t, filepath.Join(repoDir, "docs", "manic.txt"), []byte("text"))

	idx, err := NewIndex(base, repoDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Start(); err != nil {
		t.Fatal(err)
	}

	res, err := idx.Search("manic", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 1 || res.Hits[0] != filepath.Join("games", "Manic_Miner.z80") {
		t.Fatalf("unexpected hits: %v", res.Hits)
	}

	res, err = idx.Search("games", "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 1 || res.Complete || res.Total != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	for model, want := range map[string]int{"48k": 2, "128k": 0} {
		res, err = idx.Search("games", model, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Hits) != want {
			t.Fatalf("model %s: unexpected hits %v", model, res.Hits)
		}
	}

	if _, err := idx.Search("  ", "", 10); err == nil {
		t.Fatal("expected error for empty term")
	}

	idx.Stop()

	// reopening prunes entries of files that are gone
	if err := os.Remove(filepath.Join(repoDir, "games", "Manic_Miner.z80")); err != nil {
		t.Fatal(err)
	}

	idx, err = NewIndex(base, repoDir)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Stop()
	if err := idx.Start(); err != nil {
		t.Fatal(err)
	}

	res, err = idx.Search("manic", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 0 {
		t.Fatalf("stale hits: %v", res.Hits)
	}
}
