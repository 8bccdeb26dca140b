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

// wait states inserted by the ULA, by T-state position within a group of 8
var waitStates = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

/*
	ULATiming describes the raster timing of a model, as far as memory
	contention is concerned. Contention only happens on the 192 display lines,
	during the first 128 T-states of each line, when the ULA fetches screen
	data.
*/
type ULATiming struct {
	LineTStates  int
	FirstLine    int
	FrameTStates int
}

var (
	Timing48K  = ULATiming{LineTStates: 224, FirstLine: 64, FrameTStates: 69888}
	Timing128K = ULATiming{LineTStates: 228, FirstLine: 63, FrameTStates: 70908}
)

//
func TimingFor(m Model) ULATiming {
	if m == Model128K {
		return Timing128K
	}
	return Timing48K
}

// Delay returns the wait states for an access to contended memory at the
// given T-state within the frame. Evaluation is one T-state ahead.
func (u ULATiming) Delay(tstate int) int {

	tstate++

	line := tstate / u.LineTStates
	if line < u.FirstLine || line >= u.FirstLine+192 {
		return 0
	}

	pos := tstate % u.LineTStates
	if pos >= 128 {
		return 0
	}

	return waitStates[pos%8]
}

//
func contended(addr uint16) bool {
	return addr >= 0x4000 && addr < 0x8000
}
