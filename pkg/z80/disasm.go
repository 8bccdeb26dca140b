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
	"fmt"
	"strings"
)

// Reader reads memory for the disassembler, without side effects.
type Reader func(addr uint16) byte

/*
	Disassemble decodes the instruction at addr and returns its text along with
	its length in bytes. Decoding goes through the same tables the interpreter
	uses, so mnemonics and instruction boundaries always agree with execution.
*/
func Disassemble(read Reader, addr uint16) (string, int) {

	pos := addr
	next := func() byte {
		b := read(pos)
		pos++
		return b
	}

	op := next()
	mode := useHL
	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			mode = useIX
		} else {
			mode = useIY
		}
		op = next()
	}

	var in *instruction
	var disp byte
	hasDisp := false

	switch {
	case op == 0xCB && mode == useHL:
		in = cbTable[next()]
	case op == 0xCB:
		disp = next()
		hasDisp = true
		in = indexedCBTable[mode-1][next()]
	case op == 0xED:
		in = edTable[next()]
	default:
		in = baseTable[mode][op]
	}

	text := in.mnemonic

	if strings.Contains(text, "{d}") {
		if !hasDisp {
			disp = next()
		}
		text = strings.Replace(text, "{d}", displacement(disp), 1)
	}

	switch {
	case strings.Contains(text, "{nn}"):
		lo := next()
		nn := uint16(next())<<8 | uint16(lo)
		text = strings.Replace(text, "{nn}", fmt.Sprintf("%04XH", nn), 1)

	case strings.Contains(text, "{n}"):
		text = strings.Replace(text, "{n}", fmt.Sprintf("%02XH", next()), 1)

	case strings.Contains(text, "{e}"):
		e := int8(next())
		text = strings.Replace(text, "{e}",
			fmt.Sprintf("%04XH", pos+uint16(e)), 1)
	}

	return text, int(pos - addr)
}

//
func displacement(d byte) string {
	if int8(d) < 0 {
		return fmt.Sprintf("-%02XH", -int(int8(d)))
	}
	return fmt.Sprintf("+%02XH", d)
}

// DisassembleRange decodes count instructions starting at addr, one line per
// instruction with address and raw bytes.
func DisassembleRange(read Reader, addr uint16, count int) []string {

	ret := make([]string, 0, count)

	for ix := 0; ix < count; ix++ {
		text, length := Disassemble(read, addr)
		var raw strings.Builder
		for b := 0; b < length; b++ {
			fmt.Fprintf(&raw, "%02X ", read(addr+uint16(b)))
		}
		ret = append(ret, fmt.Sprintf("%04X  %-12s %s", addr, raw.String(), text))
		addr += uint16(length)
	}

	return ret
}
