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
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump [-b|--bank {bank}] [-i|--input {file}] [-a|--address {address}]",
		"dump RAM page from file or daemon",
		`
Use the dump command to output a hex dump of a RAM page, either from a local
snapshot file or from the running machine. Pages are numbered as on the 128k
machine, i.e. on a 48k machine, 5 is the page at 0x4000, 2 the page at 0x8000,
and 0 the page at 0xC000.`,
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.Input, "input", "i", "", "", "snapshot input file", false)
	d.AddSetting(&d.Bank, "bank", "b", "", 0, "RAM page (0-7)", false)

	return d
}

//
type Dump struct {
	Runner
	//
	Bank  int
	Input string
}

//
func (d *Dump) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	if d.Input != "" {
		m, err := loadMachine(d.Input, nil)
		if err != nil {
			return err
		}

		page, err := m.Memory().ReadPage(d.Bank)
		if err != nil {
			return err
		}

		dumper := hex.Dumper(os.Stdout)
		defer dumper.Close()
		_, err = dumper.Write(page)
		return err
	}

	resp, err := d.apiCall("GET", fmt.Sprintf("/memory?bank=%d", d.Bank), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}
