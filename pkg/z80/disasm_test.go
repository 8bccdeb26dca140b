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

import (
	"strings"
	"testing"
)

//
func TestDisassemble(t *testing.T) {

	tests := []struct {
		code   []byte
		want   string
		length int
	}{
		{[]byte{0x00}, "NOP", 1},
		{[]byte{0x3E, 0x2A}, "LD A,2AH", 2},
		{[]byte{0x21, 0x00, 0x40}, "LD HL,4000H", 3},
		{[]byte{0x18, 0xFE}, "JR 8000H", 2},
		{[]byte{0xDD, 0x36, 0x05, 0x10}, "LD (IX+05H),10H", 4},
		{[]byte{0xFD, 0x7E, 0xFF}, "LD A,(IY-01H)", 3},
		{[]byte{0xDD, 0xCB, 0x02, 0x46}, "BIT 0,(IX+02H)", 4},
		{[]byte{0xFD, 0xCB, 0x02, 0x10}, "RL (IY+02H),B", 4},
		{[]byte{0xED, 0xB0}, "LDIR", 2},
		{[]byte{0xED, 0x4B, 0x34, 0x12}, "LD BC,(1234H)", 4},
		{[]byte{0xCB, 0x7E}, "BIT 7,(HL)", 2},
		{[]byte{0xDD, 0x65}, "LD IXH,IXL", 2},
		{[]byte{0xFF}, "RST 38H", 1},
		{[]byte{0xD3, 0xFE}, "OUT (FEH),A", 2},
		{[]byte{0xCA, 0x00, 0x80}, "JP Z,8000H", 3},
		{[]byte{0xED, 0x56}, "IM 1", 2},
	}

	for _, tc := range tests {
		var mem [0x10000]byte
		copy(mem[0x8000:], tc.code)
		text, length := Disassemble(func(a uint16) byte { return mem[a] }, 0x8000)
		if text != tc.want || length != tc.length {
			t.Fatalf("% X: got '%s' (%d), want '%s' (%d)",
				tc.code, text, length, tc.want, tc.length)
		}
	}
}

//
func TestDisassembleRange(t *testing.T) {

	var mem [0x10000]byte
	copy(mem[0x8000:], []byte{0x3E, 0x01, 0x00, 0xC9})

	lines := DisassembleRange(func(a uint16) byte { return mem[a] }, 0x8000, 3)
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[2], "8003  C9 ") ||
		!strings.HasSuffix(lines[2], " RET") {
		t.Fatalf("unexpected line: '%s'", lines[2])
	}
}
