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
	"fmt"
)

//
func hardwareModeName(mode byte, version int) (string, error) {

	hw := ""
	supported := true

	switch mode {

	case 0:
		hw = "48k"
	case 1:
		hw = "48k + If.1"
	case 2:
		hw = "SamRam"
		supported = false
	case 3:
		if version == 2 {
			hw = "128k"
		} else {
			hw = "48k + M.G.T."
		}
	case 4:
		if version == 2 {
			hw = "128k + If.1"
		} else {
			hw = "128k"
		}
	case 5:
		if version == 3 {
			hw = "128k + If.1"
		}
	case 6:
		if version == 3 {
			hw = "128k + M.G.T."
		}
	case 7:
		hw = "Spectrum +3"
	case 8:
		hw = "Spectrum +3 (incorrect)"
	case 9:
		hw = "Pentagon (128K)"
	case 10:
		hw = "Scorpion (256K)"
		supported = false
	case 11:
		hw = "Didaktik-Kompakt"
		supported = false
	case 12:
		hw = "Spectrum +2"
	case 13:
		hw = "Spectrum +2A"
	case 14:
		hw = "TC2048"
		supported = false
	case 15:
		hw = "TC2068"
		supported = false
	case 128:
		hw = "TS2068"
		supported = false
	}

	if hw == "" {
		return "", fmt.Errorf("invalid h/w mode: %d", mode)
	}

	if !supported {
		return hw, fmt.Errorf("unsupported h/w mode: %s (%d)", hw, mode)
	}

	return hw, nil
}

// is128K tells whether a hardware mode selects 128K paging. Version 1 files
// are always 48K.
func is128K(mode byte, version int) bool {
	switch version {
	case 2:
		return mode >= 3
	case 3:
		return mode >= 4
	}
	return false
}
