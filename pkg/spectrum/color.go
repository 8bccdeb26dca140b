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

/*
	FromSpectrumColor converts a Spectrum attribute byte into host colour
	format. The attribute layout is

		7      6       5       4       3       2     1     0
		flash  bright  paperG  paperR  paperB  inkG  inkR  inkB

	Host format carries ink in the high byte and paper in the low byte, two
	bits per channel (B at 5-4, G at 3-2, R at 1-0), the lower one being the
	bright half. Bright sets 0x4000 so that bright black survives the round
	trip, flash sets 0x8000.
*/
func FromSpectrumColor(attr byte) uint16 {

	bright := attr&0x40 != 0

	ink := uint16(attr&0x04) << 9
	ink |= uint16(attr&0x02) << 8
	ink |= uint16(attr&0x01) << 13

	paper := uint16(attr&0x20) >> 2
	paper |= uint16(attr&0x10) >> 3
	paper |= uint16(attr&0x08) << 2

	ret := ink | paper

	if bright {
		ret |= ret>>1 | 0x4000
	}
	if attr&0x80 != 0 {
		ret |= 0x8000
	}

	return ret
}

// ToSpectrumColor converts host colour format back into an attribute byte.
// Colours in the swapped flash phase are recognized by 0x0080 being set.
func ToSpectrumColor(color uint16) byte {

	if color&0x0080 != 0 {
		color = color<<8 | color>>8
	}

	var ret byte

	if color&0x4000 != 0 {
		ret |= 0x40
	}
	if color&0x8000 != 0 {
		ret |= 0x80
	}

	paper := byte(color)
	ret |= (paper & 0x20) >> 2
	ret |= (paper & 0x02) << 3
	ret |= (paper & 0x08) << 2

	ink := byte(color >> 8)
	ret |= (ink & 0x20) >> 5
	ret |= ink & 0x02
	ret |= (ink & 0x08) >> 1

	return ret
}
