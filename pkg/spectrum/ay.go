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

package spectrum

//
const AYRegisterCount = 16

/*
	AYState is the register file of the AY-3-8912 sound chip, as far as the
	CPU sees it. Sound synthesis happens elsewhere, off the register values.
*/
type AYState struct {
	Registers [AYRegisterCount]byte
	Selected  byte
}

//
func (a *AYState) Reset() {
	for ix := range a.Registers {
		a.Registers[ix] = 0xFF
	}
	a.Selected = 0xFF
}

//
func (a *AYState) Select(reg byte) {
	a.Selected = reg
}

//
func (a *AYState) Write(v byte) {
	if a.Selected < AYRegisterCount {
		a.Registers[a.Selected] = v
	}
}

//
func (a *AYState) Read() byte {
	if a.Selected < AYRegisterCount {
		return a.Registers[a.Selected]
	}
	return 0xFF
}
