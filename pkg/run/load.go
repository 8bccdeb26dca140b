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

package run

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/xelalexv/zxcore/pkg/repo"
	"github.com/xelalexv/zxcore/pkg/snapshot"
)

//
func NewLoad() *Load {

	l := &Load{}
	l.Runner = *NewRunner(
		"load [-a|--address {address}] -i|--input {file} | -r|--ref {reference}",
		"load snapshot into daemon",
		`
Use the load command to load a .z80 snapshot into the running machine. The
snapshot is either a local file, or a reference the daemon resolves itself:

  repo://{path}   snapshot in the daemon's repository
  file://{path}   file local to the daemon
  http(s)://...   download

Snapshots may be compressed with gzip, zip, or 7z.`,
		"", runnerHelpEpilogue, l.Run)

	l.AddBaseSettings()
	l.AddSetting(&l.Input, "input", "i", "", "", "snapshot input file", false)
	l.AddSetting(&l.Ref, "ref", "r", "", "", "snapshot reference", false)

	return l
}

//
type Load struct {
	Runner
	//
	Input string
	Ref   string
}

//
func (l *Load) Run() error {

	if err := l.ParseSettings(); err != nil {
		return err
	}

	if (l.Input == "") == (l.Ref == "") {
		return fmt.Errorf("either input file or reference required")
	}

	var resp io.ReadCloser
	var err error

	if l.Ref != "" {
		resp, err = l.apiCall("PUT",
			fmt.Sprintf("/snapshot?ref=%s", url.QueryEscape(l.Ref)), false, nil)

	} else {
		var in *repo.FileSource
		if in, err = repo.NewFileSource(l.Input); err != nil {
			return err
		}
		defer in.Close()

		_, typ, compressor := snapshot.SplitNameTypeCompressor(l.Input)
		if typ != "" && typ != snapshot.TypeZ80 {
			return fmt.Errorf("not a .z80 snapshot: %s", l.Input)
		}
		resp, err = l.apiCall("PUT",
			fmt.Sprintf("/snapshot?compressor=%s", compressor), false, in)
	}

	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}
