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

package z80

// precomputed S, Z, Y, X and parity flags for every byte value
var (
	sz53   [256]byte
	sz53p  [256]byte
	parity [256]byte
)

//
func init() {
	for i := 0; i < 256; i++ {
		sz53[i] = byte(i) & (FlagS | FlagY | FlagX)
		p := byte(0)
		for j := byte(i); j != 0; j >>= 1 {
			p ^= j & 1
		}
		if p == 0 {
			parity[i] = FlagPV
		}
		sz53p[i] = sz53[i] | parity[i]
	}
	sz53[0] |= FlagZ
	sz53p[0] |= FlagZ
}

//
func flagIf(cond bool, flag byte) byte {
	if cond {
		return flag
	}
	return 0
}
