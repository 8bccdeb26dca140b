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

// screen geometry in Spectrum format
const (
	PixelBytes     = 0x1800
	AttributeCount = 32 * 24
	ScreenBytes    = PixelBytes + AttributeCount

	restOffset = PixelBytes + AttributeCount
	restSize   = PageSize - restOffset
)

/*
	VideoPage is a RAM page holding a screen. Pixels are kept as they are,
	attributes are held in host colour format as produced by
	FromSpectrumColor, and the remaining 0x2500 bytes are plain RAM.
*/
type VideoPage struct {
	Pixels     [PixelBytes]byte
	Attributes [AttributeCount]uint16
	rest       [restSize]byte
}

//
func (v *VideoPage) read(offset uint16) byte {
	switch {
	case offset < PixelBytes:
		return v.Pixels[offset]
	case offset < restOffset:
		return ToSpectrumColor(v.Attributes[offset-PixelBytes])
	}
	return v.rest[offset-restOffset]
}

//
func (v *VideoPage) write(offset uint16, b byte) {
	switch {
	case offset < PixelBytes:
		v.Pixels[offset] = b
	case offset < restOffset:
		v.Attributes[offset-PixelBytes] = FromSpectrumColor(b)
	default:
		v.rest[offset-restOffset] = b
	}
}

//
func (v *VideoPage) load(data []byte) {
	copy(v.Pixels[:], data[:PixelBytes])
	for ix := range v.Attributes {
		v.Attributes[ix] = FromSpectrumColor(data[PixelBytes+ix])
	}
	copy(v.rest[:], data[restOffset:])
}

//
func (v *VideoPage) store(buf []byte) {
	copy(buf, v.Pixels[:])
	for ix, a := range v.Attributes {
		buf[PixelBytes+ix] = ToSpectrumColor(a)
	}
	copy(buf[restOffset:], v.rest[:])
}

//
func (v *VideoPage) toggleFlash() {
	for ix, a := range v.Attributes {
		if a&0x8080 != 0 {
			v.Attributes[ix] = a<<8 | a>>8
		}
	}
}

// ScreenView gives renderers read access to the screen being displayed.
type ScreenView struct {
	mem *Memory
}

// Pixel returns pixel byte ix, 0 <= ix < PixelBytes, in Spectrum layout.
func (s ScreenView) Pixel(ix int) byte {
	return s.mem.view.Pixels[ix]
}

// Attribute returns attribute ix in host colour format, with the current
// flash phase applied.
func (s ScreenView) Attribute(ix int) uint16 {
	return s.mem.view.Attributes[ix]
}

// Shadow tells whether the view shows the shadow screen in RAM page 7.
func (s ScreenView) Shadow() bool {
	return s.mem.view == s.mem.video[1]
}

// Bytes returns a copy of the screen in Spectrum format, i.e. the 6912 bytes
// of a .scr file.
func (s ScreenView) Bytes() []byte {
	ret := make([]byte, ScreenBytes)
	copy(ret, s.mem.view.Pixels[:])
	for ix, a := range s.mem.view.Attributes {
		ret[PixelBytes+ix] = ToSpectrumColor(a)
	}
	return ret
}
