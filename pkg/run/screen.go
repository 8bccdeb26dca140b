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
	"strings"

	"github.com/xelalexv/zxcore/pkg/snapshot"
)

//
func NewScreen() *Screen {

	s := &Screen{}
	s.Runner = *NewRunner(
		`screen [-a|--address {address}] -o|--output {file} [-f|--format {png|scr}]
      [-s|--scale {1-8}] [-y|--yes]`,
		"take screenshot",
		`
Use the screen command to take a screenshot of the running machine, either as
PNG image or in .scr format. If no format is given, it is taken from the output
file name.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Output, "output", "o", "", nil, "screenshot output file", true)
	s.AddSetting(&s.Format, "format", "f", "", "", "screenshot format, png or scr", false)
	s.AddSetting(&s.Scale, "scale", "s", "", 1, "scale factor for PNG images", false)
	s.AddSetting(&s.Yes, "yes", "y", "", false,
		"overwrite existing file without confirmation", false)

	return s
}

//
type Screen struct {
	Runner
	//
	Output string
	Format string
	Scale  int
	Yes    bool
}

//
func (s *Screen) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	format := strings.ToLower(s.Format)
	if format == "" {
		if _, typ, _ := snapshot.SplitNameTypeCompressor(s.Output); typ == snapshot.TypeSCR {
			format = snapshot.TypeSCR
		} else {
			format = "png"
		}
	}

	resp, err := s.apiCall("GET",
		fmt.Sprintf("/screen?format=%s&scale=%d", format, s.Scale), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	return writeOutput(s.Output, s.Yes, resp)
}
