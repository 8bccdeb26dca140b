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

import "strconv"

// --- CB ---------------------------------------------------------------------

//
func cbInstruction(op byte) *instruction {

	x, y, z := op>>6, (op>>3)&7, op&7
	name := reg8Names[z]
	bitNo := strconv.Itoa(int(y))

	if x == 1 {
		if z == 6 {
			return &instruction{"BIT " + bitNo + ",(HL)", 12, func(c *CPU) {
				c.bit(y, c.read(c.HL()), byte(c.WZ>>8))
			}}
		}
		return &instruction{"BIT " + bitNo + "," + name, 8, func(c *CPU) {
			v := c.reg8(z, useHL)
			c.bit(y, v, v)
		}}
	}

	var mnemonic string
	var f func(c *CPU, v byte) byte

	switch x {
	case 0:
		mnemonic = rotNames[y] + " " + name
		f = func(c *CPU, v byte) byte { return c.rotate(y, v) }
	case 2:
		mnemonic = "RES " + bitNo + "," + name
		f = func(c *CPU, v byte) byte { return v &^ (1 << y) }
	default:
		mnemonic = "SET " + bitNo + "," + name
		f = func(c *CPU, v byte) byte { return v | 1<<y }
	}

	if z == 6 {
		return &instruction{mnemonic, 15, func(c *CPU) {
			addr := c.HL()
			c.write(addr, f(c, c.read(addr)))
		}}
	}
	return &instruction{mnemonic, 8, func(c *CPU) {
		c.setReg8(z, useHL, f(c, c.reg8(z, useHL)))
	}}
}

/*
	indexedCBInstruction builds the DDCB/FDCB forms. The operand is always
	(IX+d) or (IY+d), with the address already latched by the decoder. For
	register encodings other than (HL), the result is also copied into that
	register.
*/
func indexedCBInstruction(op byte, m indexMode) *instruction {

	x, y, z := op>>6, (op>>3)&7, op&7
	operand := regName(6, m)
	bitNo := strconv.Itoa(int(y))

	if x == 1 {
		return &instruction{"BIT " + bitNo + "," + operand, 16, func(c *CPU) {
			c.bit(y, c.read(c.ea), byte(c.ea>>8))
		}}
	}

	var mnemonic string
	var f func(c *CPU, v byte) byte

	switch x {
	case 0:
		mnemonic = rotNames[y] + " " + operand
		f = func(c *CPU, v byte) byte { return c.rotate(y, v) }
	case 2:
		mnemonic = "RES " + bitNo + "," + operand
		f = func(c *CPU, v byte) byte { return v &^ (1 << y) }
	default:
		mnemonic = "SET " + bitNo + "," + operand
		f = func(c *CPU, v byte) byte { return v | 1<<y }
	}

	if z != 6 {
		mnemonic += "," + reg8Names[z]
	}

	return &instruction{mnemonic, 19, func(c *CPU) {
		v := f(c, c.read(c.ea))
		c.write(c.ea, v)
		if z != 6 {
			c.setReg8(z, useHL, v)
		}
	}}
}

// --- ED ---------------------------------------------------------------------

var imModes = [8]byte{0, 0, 1, 2, 0, 0, 1, 2}

var blockNames = [4][4]string{
	{"LDI", "CPI", "INI", "OUTI"},
	{"LDD", "CPD", "IND", "OUTD"},
	{"LDIR", "CPIR", "INIR", "OTIR"},
	{"LDDR", "CPDR", "INDR", "OTDR"},
}

//
func edInstruction(op byte) *instruction {

	x, y, z := op>>6, (op>>3)&7, op&7
	p, q := y>>1, y&1

	switch {
	case x == 1:
		return edX1(y, z, p, q)
	case x == 2 && z <= 3 && y >= 4:
		return blockInstruction(y-4, z)
	}

	return &instruction{"NOP", 8, func(c *CPU) {}}
}

//
func edX1(y, z, p, q byte) *instruction {

	switch z {

	case 0:
		mnemonic := "IN " + reg8Names[y] + ",(C)"
		if y == 6 {
			mnemonic = "IN (C)"
		}
		return &instruction{mnemonic, 12, func(c *CPU) {
			c.WZ = c.BC() + 1
			v := c.in(c.C, c.B)
			if y != 6 {
				c.setReg8(y, useHL, v)
			}
			c.F = c.F&FlagC | sz53p[v]
		}}

	case 1:
		mnemonic := "OUT (C)," + reg8Names[y]
		if y == 6 {
			mnemonic = "OUT (C),0"
		}
		return &instruction{mnemonic, 12, func(c *CPU) {
			var v byte
			if y != 6 {
				v = c.reg8(y, useHL)
			}
			c.out(c.C, c.B, v)
			c.WZ = c.BC() + 1
		}}

	case 2:
		if q == 0 {
			return &instruction{"SBC HL," + pairNames[p], 15, func(c *CPU) {
				c.SetHL(c.sbc16(c.HL(), c.pair(p, useHL, false)))
			}}
		}
		return &instruction{"ADC HL," + pairNames[p], 15, func(c *CPU) {
			c.SetHL(c.adc16(c.HL(), c.pair(p, useHL, false)))
		}}

	case 3:
		if q == 0 {
			return &instruction{"LD ({nn})," + pairNames[p], 20, func(c *CPU) {
				addr := c.fetchWord()
				c.writeWord(addr, c.pair(p, useHL, false))
				c.WZ = addr + 1
			}}
		}
		return &instruction{"LD " + pairNames[p] + ",({nn})", 20, func(c *CPU) {
			addr := c.fetchWord()
			c.setPair(p, useHL, false, c.readWord(addr))
			c.WZ = addr + 1
		}}

	case 4:
		return &instruction{"NEG", 8, func(c *CPU) {
			c.A = c.sub8(0, c.A, 0)
		}}

	case 5:
		mnemonic := "RETN"
		if y == 1 {
			mnemonic = "RETI"
		}
		return &instruction{mnemonic, 14, func(c *CPU) {
			c.PC = c.pop()
			c.WZ = c.PC
			c.IFF1 = c.IFF2
		}}

	case 6:
		im := imModes[y]
		return &instruction{"IM " + strconv.Itoa(int(im)), 8, func(c *CPU) {
			c.IM = im
		}}
	}

	switch y {
	case 0:
		return &instruction{"LD I,A", 9, func(c *CPU) { c.I = c.A }}
	case 1:
		return &instruction{"LD R,A", 9, func(c *CPU) { c.R = c.A }}
	case 2:
		return &instruction{"LD A,I", 9, func(c *CPU) {
			c.A = c.I
			c.F = c.F&FlagC | sz53[c.A] | flagIf(c.IFF2, FlagPV)
		}}
	case 3:
		return &instruction{"LD A,R", 9, func(c *CPU) {
			c.A = c.R
			c.F = c.F&FlagC | sz53[c.A] | flagIf(c.IFF2, FlagPV)
		}}
	case 4:
		return &instruction{"RRD", 18, func(c *CPU) {
			addr := c.HL()
			v := c.read(addr)
			c.write(addr, c.A<<4|v>>4)
			c.A = c.A&0xF0 | v&0x0F
			c.F = c.F&FlagC | sz53p[c.A]
			c.WZ = addr + 1
		}}
	case 5:
		return &instruction{"RLD", 18, func(c *CPU) {
			addr := c.HL()
			v := c.read(addr)
			c.write(addr, v<<4|c.A&0x0F)
			c.A = c.A&0xF0 | v>>4
			c.F = c.F&FlagC | sz53p[c.A]
			c.WZ = addr + 1
		}}
	}

	return &instruction{"NOP", 8, func(c *CPU) {}}
}

// block transfer, compare and I/O kinds, in encoding order
const (
	blockLD byte = iota
	blockCP
	blockIN
	blockOUT
)

/*
	blockInstruction builds LDI/CPI/INI/OUTI and their decrementing and
	repeating variants. variant bit 0 selects decrement, bit 1 repetition. A
	repeating instruction that is not done yet rewinds PC onto itself and costs
	5 more T-states.
*/
func blockInstruction(variant, kind byte) *instruction {

	dec := variant&1 == 1
	repeat := variant&2 != 0
	step := uint16(1)
	if dec {
		step = 0xFFFF
	}

	return &instruction{blockNames[variant][kind], 16, func(c *CPU) {

		var again bool

		switch kind {

		case blockLD:
			v := c.read(c.HL())
			c.write(c.DE(), v)
			c.SetHL(c.HL() + step)
			c.SetDE(c.DE() + step)
			c.SetBC(c.BC() - 1)
			n := v + c.A
			c.F = c.F&(FlagS|FlagZ|FlagC) | flagIf(c.BC() != 0, FlagPV) |
				n&FlagX | (n<<4)&FlagY
			again = c.BC() != 0

		case blockCP:
			v := c.read(c.HL())
			r := c.A - v
			h := (c.A ^ v ^ r) & FlagH
			c.SetHL(c.HL() + step)
			c.SetBC(c.BC() - 1)
			c.WZ += step
			n := r - h>>4
			c.F = c.F&FlagC | FlagN | sz53[r]&(FlagS|FlagZ) | h |
				flagIf(c.BC() != 0, FlagPV) | n&FlagX | (n<<4)&FlagY
			again = c.BC() != 0 && r != 0

		case blockIN:
			c.WZ = c.BC() + step
			v := c.in(c.C, c.B)
			c.write(c.HL(), v)
			c.B--
			c.SetHL(c.HL() + step)
			c.blockIOFlags(v, int(v)+int(c.C+byte(step)))
			again = c.B != 0

		case blockOUT:
			v := c.read(c.HL())
			c.B--
			c.out(c.C, c.B, v)
			c.SetHL(c.HL() + step)
			c.WZ = c.BC() + step
			c.blockIOFlags(v, int(v)+int(c.L))
			again = c.B != 0
		}

		if repeat && again {
			c.PC -= 2
			c.extra = 5
			if kind == blockLD || kind == blockCP {
				c.WZ = c.PC + 1
			}
		}
	}}
}

// blockIOFlags sets the flags after INI/OUTI and their variants, with v the
// transferred byte and k the sum used for carry and parity.
func (c *CPU) blockIOFlags(v byte, k int) {
	c.F = sz53[c.B] | flagIf(v&0x80 != 0, FlagN) |
		flagIf(k > 0xFF, FlagH|FlagC) | parity[byte(k)&7^c.B]
}
