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

/*
	instruction describes one decoded opcode: its mnemonic template, its base
	timing in T-states excluding index prefixes, and the function executing it.
	Placeholders in the mnemonic are resolved by the disassembler:

		{n}   immediate byte
		{nn}  immediate word
		{e}   relative jump target
		{d}   signed index displacement
*/
type instruction struct {
	mnemonic string
	tstates  int
	exec     func(c *CPU)
}

// decode tables, filled once by init
var (
	baseTable      [3][256]*instruction
	cbTable        [256]*instruction
	indexedCBTable [2][256]*instruction
	edTable        [256]*instruction
)

var (
	reg8Names  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames  = [4]string{"BC", "DE", "HL", "SP"}
	pair2Names = [4]string{"BC", "DE", "HL", "AF"}
	condNames  = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
)

//
func init() {
	for m := useHL; m <= useIY; m++ {
		for op := 0; op < 256; op++ {
			baseTable[m][op] = baseInstruction(byte(op), m)
		}
	}
	for op := 0; op < 256; op++ {
		cbTable[op] = cbInstruction(byte(op))
		indexedCBTable[0][op] = indexedCBInstruction(byte(op), useIX)
		indexedCBTable[1][op] = indexedCBInstruction(byte(op), useIY)
		edTable[op] = edInstruction(byte(op))
	}
}

//
func indexName(m indexMode) string {
	switch m {
	case useIX:
		return "IX"
	case useIY:
		return "IY"
	}
	return "HL"
}

// regName names 8 bit register r, taking the index mode into account.
func regName(r byte, m indexMode) string {
	if m != useHL {
		switch r {
		case 4:
			return indexName(m) + "H"
		case 5:
			return indexName(m) + "L"
		case 6:
			return "(" + indexName(m) + "{d})"
		}
	}
	return reg8Names[r]
}

//
func pairName(p byte, m indexMode, withAF bool) string {
	if p == 2 {
		return indexName(m)
	}
	if withAF {
		return pair2Names[p]
	}
	return pairNames[p]
}

// indexedCost is the extra time an index mode adds to an instruction
// operating on (HL), for address calculation.
func indexedCost(m indexMode, cost int) int {
	if m == useHL {
		return 0
	}
	return cost
}

//
func baseInstruction(op byte, m indexMode) *instruction {

	x, y, z := op>>6, (op>>3)&7, op&7
	p, q := y>>1, y&1

	switch x {
	case 0:
		return baseX0(y, z, p, q, m)

	case 1:
		switch {
		case op == 0x76:
			return &instruction{"HALT", 4, func(c *CPU) { c.Halted = true }}

		case y == 6:
			return &instruction{"LD " + regName(6, m) + "," + reg8Names[z],
				7 + indexedCost(m, 8), func(c *CPU) {
					c.write(c.memAddr(m), c.reg8(z, useHL))
				}}

		case z == 6:
			return &instruction{"LD " + reg8Names[y] + "," + regName(6, m),
				7 + indexedCost(m, 8), func(c *CPU) {
					c.setReg8(y, useHL, c.read(c.memAddr(m)))
				}}

		default:
			return &instruction{"LD " + regName(y, m) + "," + regName(z, m), 4,
				func(c *CPU) { c.setReg8(y, m, c.reg8(z, m)) }}
		}

	case 2:
		op := aluOp(y)
		if z == 6 {
			return &instruction{aluNames[y] + regName(6, m), 7 + indexedCost(m, 8),
				func(c *CPU) { c.alu(op, c.read(c.memAddr(m))) }}
		}
		return &instruction{aluNames[y] + regName(z, m), 4,
			func(c *CPU) { c.alu(op, c.reg8(z, m)) }}
	}

	return baseX3(y, z, p, q, m)
}

//
func baseX0(y, z, p, q byte, m indexMode) *instruction {

	switch z {

	case 0:
		switch y {
		case 0:
			return &instruction{"NOP", 4, func(c *CPU) {}}
		case 1:
			return &instruction{"EX AF,AF'", 4, func(c *CPU) { c.ExAF() }}
		case 2:
			return &instruction{"DJNZ {e}", 8, func(c *CPU) {
				c.B--
				c.jumpRelative(c.B != 0, 5)
			}}
		case 3:
			return &instruction{"JR {e}", 12, func(c *CPU) {
				c.jumpRelative(true, 0)
			}}
		default:
			cc := y - 4
			return &instruction{"JR " + condNames[cc] + ",{e}", 7, func(c *CPU) {
				c.jumpRelative(c.condition(cc), 5)
			}}
		}

	case 1:
		if q == 0 {
			return &instruction{"LD " + pairName(p, m, false) + ",{nn}", 10,
				func(c *CPU) { c.setPair(p, m, false, c.fetchWord()) }}
		}
		return &instruction{
			"ADD " + indexName(m) + "," + pairName(p, m, false), 11,
			func(c *CPU) {
				c.setPair(2, m, false, c.add16(c.indexBase(m), c.pair(p, m, false)))
			}}

	case 2:
		return baseIndirectLoad(p, q, m)

	case 3:
		if q == 0 {
			return &instruction{"INC " + pairName(p, m, false), 6, func(c *CPU) {
				c.setPair(p, m, false, c.pair(p, m, false)+1)
			}}
		}
		return &instruction{"DEC " + pairName(p, m, false), 6, func(c *CPU) {
			c.setPair(p, m, false, c.pair(p, m, false)-1)
		}}

	case 4:
		if y == 6 {
			return &instruction{"INC " + regName(6, m), 11 + indexedCost(m, 8),
				func(c *CPU) {
					addr := c.memAddr(m)
					c.write(addr, c.inc8(c.read(addr)))
				}}
		}
		return &instruction{"INC " + regName(y, m), 4, func(c *CPU) {
			c.setReg8(y, m, c.inc8(c.reg8(y, m)))
		}}

	case 5:
		if y == 6 {
			return &instruction{"DEC " + regName(6, m), 11 + indexedCost(m, 8),
				func(c *CPU) {
					addr := c.memAddr(m)
					c.write(addr, c.dec8(c.read(addr)))
				}}
		}
		return &instruction{"DEC " + regName(y, m), 4, func(c *CPU) {
			c.setReg8(y, m, c.dec8(c.reg8(y, m)))
		}}

	case 6:
		if y == 6 {
			return &instruction{"LD " + regName(6, m) + ",{n}", 10 + indexedCost(m, 5),
				func(c *CPU) {
					addr := c.memAddr(m)
					c.write(addr, c.fetchByte())
				}}
		}
		return &instruction{"LD " + regName(y, m) + ",{n}", 7, func(c *CPU) {
			c.setReg8(y, m, c.fetchByte())
		}}
	}

	return accumulatorOp(y)
}

// accumulatorOp covers the x=0, z=7 column: rotations of A, DAA, CPL, SCF
// and CCF.
func accumulatorOp(y byte) *instruction {

	switch y {
	case 0, 1, 2, 3:
		names := [4]string{"RLCA", "RRCA", "RLA", "RRA"}
		return &instruction{names[y], 4, func(c *CPU) { c.rotateA(y) }}

	case 4:
		return &instruction{"DAA", 4, func(c *CPU) { c.daa() }}

	case 5:
		return &instruction{"CPL", 4, func(c *CPU) {
			c.A = ^c.A
			c.F = c.F&(FlagS|FlagZ|FlagPV|FlagC) | FlagH | FlagN |
				c.A&(FlagX|FlagY)
		}}

	case 6:
		return &instruction{"SCF", 4, func(c *CPU) {
			c.F = c.F&(FlagS|FlagZ|FlagPV) | FlagC | c.A&(FlagX|FlagY)
		}}
	}

	return &instruction{"CCF", 4, func(c *CPU) {
		c.F = c.F&(FlagS|FlagZ|FlagPV) | c.A&(FlagX|FlagY) |
			flagIf(c.F&FlagC != 0, FlagH) | flagIf(c.F&FlagC == 0, FlagC)
	}}
}

// baseIndirectLoad covers the x=0, z=2 column.
func baseIndirectLoad(p, q byte, m indexMode) *instruction {

	hl := indexName(m)

	switch p<<1 | q {
	case 0:
		return &instruction{"LD (BC),A", 7, func(c *CPU) {
			c.write(c.BC(), c.A)
			c.WZ = uint16(c.A)<<8 | uint16(c.C+1)
		}}
	case 1:
		return &instruction{"LD A,(BC)", 7, func(c *CPU) {
			c.A = c.read(c.BC())
			c.WZ = c.BC() + 1
		}}
	case 2:
		return &instruction{"LD (DE),A", 7, func(c *CPU) {
			c.write(c.DE(), c.A)
			c.WZ = uint16(c.A)<<8 | uint16(c.E+1)
		}}
	case 3:
		return &instruction{"LD A,(DE)", 7, func(c *CPU) {
			c.A = c.read(c.DE())
			c.WZ = c.DE() + 1
		}}
	case 4:
		return &instruction{"LD ({nn})," + hl, 16, func(c *CPU) {
			addr := c.fetchWord()
			c.writeWord(addr, c.indexBase(m))
			c.WZ = addr + 1
		}}
	case 5:
		return &instruction{"LD " + hl + ",({nn})", 16, func(c *CPU) {
			addr := c.fetchWord()
			c.setPair(2, m, false, c.readWord(addr))
			c.WZ = addr + 1
		}}
	case 6:
		return &instruction{"LD ({nn}),A", 13, func(c *CPU) {
			addr := c.fetchWord()
			c.write(addr, c.A)
			c.WZ = uint16(c.A)<<8 | (addr+1)&0xFF
		}}
	}

	return &instruction{"LD A,({nn})", 13, func(c *CPU) {
		addr := c.fetchWord()
		c.A = c.read(addr)
		c.WZ = addr + 1
	}}
}

//
func baseX3(y, z, p, q byte, m indexMode) *instruction {

	switch z {

	case 0:
		return &instruction{"RET " + condNames[y], 5, func(c *CPU) {
			if c.condition(y) {
				c.PC = c.pop()
				c.WZ = c.PC
				c.extra = 6
			}
		}}

	case 1:
		if q == 0 {
			return &instruction{"POP " + pairName(p, m, true), 10, func(c *CPU) {
				c.setPair(p, m, true, c.pop())
			}}
		}
		switch p {
		case 0:
			return &instruction{"RET", 10, func(c *CPU) {
				c.PC = c.pop()
				c.WZ = c.PC
			}}
		case 1:
			return &instruction{"EXX", 4, func(c *CPU) { c.Exx() }}
		case 2:
			return &instruction{"JP (" + indexName(m) + ")", 4, func(c *CPU) {
				c.PC = c.indexBase(m)
			}}
		}
		return &instruction{"LD SP," + indexName(m), 6, func(c *CPU) {
			c.SP = c.indexBase(m)
		}}

	case 2:
		return &instruction{"JP " + condNames[y] + ",{nn}", 10, func(c *CPU) {
			addr := c.fetchWord()
			c.WZ = addr
			if c.condition(y) {
				c.PC = addr
			}
		}}

	case 3:
		return baseX3Z3(y, m)

	case 4:
		return &instruction{"CALL " + condNames[y] + ",{nn}", 10, func(c *CPU) {
			addr := c.fetchWord()
			c.WZ = addr
			if c.condition(y) {
				c.push(c.PC)
				c.PC = addr
				c.extra = 7
			}
		}}

	case 5:
		if q == 0 {
			return &instruction{"PUSH " + pairName(p, m, true), 11, func(c *CPU) {
				c.push(c.pair(p, m, true))
			}}
		}
		if p == 0 {
			return &instruction{"CALL {nn}", 17, func(c *CPU) {
				addr := c.fetchWord()
				c.push(c.PC)
				c.PC = addr
				c.WZ = addr
			}}
		}
		// prefixes, consumed by the decoder and never executed from here
		return &instruction{"NOP", 4, func(c *CPU) {}}

	case 6:
		op := aluOp(y)
		return &instruction{aluNames[y] + "{n}", 7, func(c *CPU) {
			c.alu(op, c.fetchByte())
		}}
	}

	vector := uint16(y) * 8
	return &instruction{rstName(vector), 11, func(c *CPU) {
		c.push(c.PC)
		c.PC = vector
		c.WZ = vector
	}}
}

//
func baseX3Z3(y byte, m indexMode) *instruction {

	switch y {
	case 0:
		return &instruction{"JP {nn}", 10, func(c *CPU) {
			c.PC = c.fetchWord()
			c.WZ = c.PC
		}}
	case 1:
		// CB prefix, consumed by the decoder
		return &instruction{"NOP", 4, func(c *CPU) {}}
	case 2:
		return &instruction{"OUT ({n}),A", 11, func(c *CPU) {
			n := c.fetchByte()
			c.out(n, c.A, c.A)
			c.WZ = uint16(c.A)<<8 | uint16(n+1)
		}}
	case 3:
		return &instruction{"IN A,({n})", 11, func(c *CPU) {
			n := c.fetchByte()
			c.WZ = (uint16(c.A)<<8 | uint16(n)) + 1
			c.A = c.in(n, c.A)
		}}
	case 4:
		return &instruction{"EX (SP)," + indexName(m), 19, func(c *CPU) {
			v := c.readWord(c.SP)
			c.writeWord(c.SP, c.indexBase(m))
			c.setPair(2, m, false, v)
			c.WZ = v
		}}
	case 5:
		return &instruction{"EX DE,HL", 4, func(c *CPU) {
			de := c.DE()
			c.SetDE(c.HL())
			c.SetHL(de)
		}}
	case 6:
		return &instruction{"DI", 4, func(c *CPU) {
			c.IFF1 = false
			c.IFF2 = false
		}}
	}

	return &instruction{"EI", 4, func(c *CPU) {
		c.IFF1 = true
		c.IFF2 = true
		c.afterEI = true
	}}
}

// jumpRelative fetches the displacement and jumps when taken, charging
// penalty extra T-states for a taken conditional jump.
func (c *CPU) jumpRelative(taken bool, penalty int) {
	d := int8(c.fetchByte())
	if taken {
		c.PC += uint16(d)
		c.WZ = c.PC
		c.extra = penalty
	}
}

//
func rstName(vector uint16) string {
	const hex = "0123456789ABCDEF"
	return "RST " + string([]byte{hex[vector>>4], hex[vector&0xF]}) + "H"
}
