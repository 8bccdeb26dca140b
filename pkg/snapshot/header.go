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
	"bytes"
	"fmt"
	"io"

	"github.com/xelalexv/zxcore/pkg/z80"
)

const (
	headerLength = 30

	extLengthV2  = 23
	extLengthV3  = 54
	extLengthV3x = 55

	flags1Compressed = 0x20
)

/*
	Header is the decoded register part of a .z80 file, followed by the fields
	of the additional header in version 2 and 3 files.
*/
type Header struct {
	Version    int
	Registers  z80.Registers
	Border     byte
	Compressed bool

	HardwareMode byte
	PagingState  byte
	AYSelect     byte
	AYRegisters  [16]byte

	extLength int
}

//
func readHeader(r io.Reader) (*Header, error) {

	buf := make([]byte, headerLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("error reading snapshot header: %v", err)
	}

	h := &Header{Version: 1}
	regs := &h.Registers

	regs.A, regs.F = buf[0], buf[1]
	regs.C, regs.B = buf[2], buf[3]
	regs.L, regs.H = buf[4], buf[5]
	regs.PC = uint16(buf[6]) | uint16(buf[7])<<8
	regs.SP = uint16(buf[8]) | uint16(buf[9])<<8
	regs.I = buf[10]

	flags1 := buf[12]
	if flags1 == 0xFF {
		flags1 = 1
	}
	regs.R = buf[11]&0x7F | (flags1&0x01)<<7
	h.Border = (flags1 >> 1) & 0x07
	h.Compressed = flags1&flags1Compressed != 0

	regs.E, regs.D = buf[13], buf[14]
	regs.C2, regs.B2 = buf[15], buf[16]
	regs.E2, regs.D2 = buf[17], buf[18]
	regs.L2, regs.H2 = buf[19], buf[20]
	regs.A2, regs.F2 = buf[21], buf[22]
	regs.IY = uint16(buf[23]) | uint16(buf[24])<<8
	regs.IX = uint16(buf[25]) | uint16(buf[26])<<8
	regs.IFF1 = buf[27] != 0
	regs.IFF2 = buf[28] != 0
	regs.IM = buf[29] & 0x03

	if regs.PC != 0 {
		return h, nil
	}

	length, err := readUInt16(r)
	if err != nil {
		return nil, fmt.Errorf("error reading additional header length: %v", err)
	}

	switch length {
	case extLengthV2:
		h.Version = 2
	case extLengthV3, extLengthV3x:
		h.Version = 3
	default:
		return nil, fmt.Errorf("invalid additional header length: %d", length)
	}
	h.extLength = length

	ext := make([]byte, length)
	if _, err := io.ReadFull(r, ext); err != nil {
		return nil, fmt.Errorf("error reading additional header: %v", err)
	}

	regs.PC = uint16(ext[0]) | uint16(ext[1])<<8
	h.HardwareMode = ext[2]
	h.PagingState = ext[3]
	h.AYSelect = ext[6]
	copy(h.AYRegisters[:], ext[7:23])
	h.Compressed = true

	return h, nil
}

// write encodes the header as a version 3 header. The PC field of the
// first part is 0, the actual PC goes into the additional header.
func (h *Header) write(b *bytes.Buffer) {

	regs := &h.Registers

	b.WriteByte(regs.A)
	b.WriteByte(regs.F)
	writeUInt16(b, int(regs.BC()))
	writeUInt16(b, int(regs.HL()))
	writeUInt16(b, 0)
	writeUInt16(b, int(regs.SP))
	b.WriteByte(regs.I)
	b.WriteByte(regs.R & 0x7F)
	b.WriteByte((regs.R>>7)&0x01 | (h.Border&0x07)<<1)
	writeUInt16(b, int(regs.DE()))
	writeUInt16(b, int(regs.BC2()))
	writeUInt16(b, int(regs.DE2()))
	writeUInt16(b, int(regs.HL2()))
	b.WriteByte(regs.A2)
	b.WriteByte(regs.F2)
	writeUInt16(b, int(regs.IY))
	writeUInt16(b, int(regs.IX))
	b.WriteByte(boolByte(regs.IFF1))
	b.WriteByte(boolByte(regs.IFF2))
	b.WriteByte(regs.IM & 0x03)

	writeUInt16(b, extLengthV3)
	ext := make([]byte, extLengthV3)
	ext[0], ext[1] = byte(regs.PC), byte(regs.PC>>8)
	ext[2] = h.HardwareMode
	ext[3] = h.PagingState
	ext[6] = h.AYSelect
	copy(ext[7:23], h.AYRegisters[:])
	b.Write(ext)
}

//
func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
