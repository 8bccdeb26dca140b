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
func NewSave() *Save {

	s := &Save{}
	s.Runner = *NewRunner(
		"save [-a|--address {address}] -o|--output {file} [-y|--yes]",
		"save machine state as snapshot",
		"\nUse the save command to save the state of the running machine as a .z80 snapshot.",
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Output, "output", "o", "", nil, "snapshot output file", true)
	s.AddSetting(&s.Yes, "yes", "y", "", false,
		"overwrite existing file without confirmation", false)

	return s
}

//
type Save struct {
	Runner
	//
	Output string
	Yes    bool
}

//
func (s *Save) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	resp, err := s.apiCall("GET", "/snapshot", false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	return writeOutput(s.Output, s.Yes, resp)
}

// writeOutput writes r to file, asking for confirmation if the file already
// exists and overwrite is not set.
func writeOutput(file string, overwrite bool, r io.Reader) error {

	if _, err := os.Stat(file); err == nil && !overwrite &&
		!GetUserConfirmation(fmt.Sprintf("\n%s exists, overwrite?", file)) {
		return nil
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("written to %s\n", file)
	return nil
}
