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
)

//
func NewReset() *Machine {
	return newMachine("reset", "reset machine",
		"\nUse the reset command to reset the machine, as if the reset button was pressed.",
		"/reset")
}

//
func NewNMI() *Machine {
	return newMachine("nmi", "trigger non-maskable interrupt",
		"\nUse the nmi command to trigger a non-maskable interrupt on the machine.",
		"/nmi")
}

//
func newMachine(use, short, long, path string) *Machine {
	m := &Machine{path: path}
	m.Runner = *NewRunner(
		fmt.Sprintf("%s [-a|--address {address}]", use), short, long,
		"", runnerHelpEpilogue, m.Run)
	m.AddBaseSettings()
	return m
}

// Machine is a command that triggers a machine action without parameters.
type Machine struct {
	Runner
	//
	path string
}

//
func (m *Machine) Run() error {

	if err := m.ParseSettings(); err != nil {
		return err
	}

	resp, err := m.apiCall("PUT", m.path, false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}
