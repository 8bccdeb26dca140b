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
	"os"
	"strconv"
	"strings"

	"github.com/xelalexv/zxcore/pkg/z80"
)

//
func NewDisasm() *Disasm {

	d := &Disasm{}
	d.Runner = *NewRunner(
		`disasm [-s|--start {address}] [-c|--count {instructions}] [-i|--input {file}]
      [-r|--rom {file},...] [-a|--address {address}]`,
		"disassemble from file or daemon",
		`
Use the disasm command to disassemble code of the running machine, or of a local
snapshot file. Without a start address, disassembly begins at the program
counter. Start addresses can be given in decimal or with 0x prefix. For a
snapshot file, ROM contents are only available when ROM files are given.`,
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", "", "snapshot input file", false)
	d.AddSetting(&d.Start, "start", "s", "", "", "start address", false)
	d.AddSetting(&d.Count, "count", "c", "", 16, "number of instructions", false)
	d.AddSetting(&d.ROMs, "rom", "r", "", nil,
		"ROM files to use with snapshot file, in page order", false)

	return d
}

//
type Disasm struct {
	Runner
	//
	Input string
	Start string
	Count int
	ROMs  []string
}

//
func (d *Disasm) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	addr := -1
	if d.IsSet("start") {
		a, err := strconv.ParseUint(d.Start, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid start address: %s", d.Start)
		}
		addr = int(a)
	}

	if d.Input != "" {
		m, err := loadMachine(d.Input, d.ROMs)
		if err != nil {
			return err
		}
		if addr < 0 {
			addr = int(m.Registers().PC)
		}
		lines := z80.DisassembleRange(m.ReadByte, uint16(addr), d.Count)
		fmt.Printf("\n%s\n\n", strings.Join(lines, "\n"))
		return nil
	}

	path := fmt.Sprintf("/disasm?count=%d", d.Count)
	if addr >= 0 {
		path = fmt.Sprintf("%s&addr=%d", path, addr)
	}

	resp, err := d.apiCall("GET", path, false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	fmt.Println()
	_, err = io.Copy(os.Stdout, resp)
	return err
}
