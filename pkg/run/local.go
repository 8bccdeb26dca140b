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

	"github.com/xelalexv/zxcore/pkg/repo"
	"github.com/xelalexv/zxcore/pkg/snapshot"
	"github.com/xelalexv/zxcore/pkg/spectrum"
)

// readSnapshot reads a local, possibly compressed, snapshot file.
func readSnapshot(file string) ([]byte, error) {

	rd, err := repo.Open(file)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	if typ := rd.Type(); typ != "" && typ != snapshot.TypeZ80 {
		return nil, fmt.Errorf("not a .z80 snapshot: %s", file)
	}

	return io.ReadAll(io.LimitReader(rd, snapshot.MaxSize))
}

// loadMachine creates a machine matching the snapshot in file and puts the
// snapshot into it.
func loadMachine(file string, roms []string) (*spectrum.Machine, error) {

	data, err := readSnapshot(file)
	if err != nil {
		return nil, err
	}

	img, err := snapshot.Parse(data)
	if err != nil {
		return nil, err
	}

	m, err := spectrum.NewMachine(img.Model, spectrum.Options{})
	if err != nil {
		return nil, err
	}

	for page, rom := range roms {
		data, err := os.ReadFile(rom)
		if err != nil {
			return nil, err
		}
		if err := m.LoadROM(page, data); err != nil {
			return nil, err
		}
	}

	if err := img.Apply(m); err != nil {
		return nil, err
	}

	return m, nil
}
