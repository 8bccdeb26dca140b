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
	"encoding/json"
	"fmt"
	"os"

	"github.com/xelalexv/zxcore/pkg/snapshot"
)

//
func NewInfo() *Info {

	i := &Info{}
	i.Runner = *NewRunner(
		"info -i|--input {file} [-j|--json]",
		"show snapshot header information",
		`
Use the info command to show the header information of a local .z80 snapshot
file, such as version, hardware mode, and start address. This does not need a
running daemon.`,
		"", "", i.Run)

	i.AddSetting(&i.Input, "input", "i", "", nil, "snapshot input file", true)
	i.AddSetting(&i.JSON, "json", "j", "", false, "output as JSON", false)

	return i
}

//
type Info struct {
	Runner
	//
	Input string
	JSON  bool
}

//
func (i *Info) Run() error {

	if err := i.ParseSettings(); err != nil {
		return err
	}

	data, err := readSnapshot(i.Input)
	if err != nil {
		return err
	}

	info, err := snapshot.ReadInfo(data)
	if err != nil {
		return err
	}

	if i.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("\n%s\n", info)
	return nil
}
