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

//
type aluOp byte

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

var aluNames = [8]string{
	"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

//
func (c *CPU) alu(op aluOp, v byte) {
	switch op {
	case aluAdd:
		c.A = c.add8(c.A, v, 0)
	case aluAdc:
		c.A = c.add8(c.A, v, c.F&FlagC)
	case aluSub:
		c.A = c.sub8(c.A, v, 0)
	case aluSbc:
		c.A = c.sub8(c.A, v, c.F&FlagC)
	case aluAnd:
		c.A &= v
		c.F = sz53p[c.A] | FlagH
	case aluXor:
		c.A ^= v
		c.F = sz53p[c.A]
	case aluOr:
		c.A |= v
		c.F = sz53p[c.A]
	case aluCp:
		c.sub8(c.A, v, 0)
		c.F = c.F&^(FlagX|FlagY) | v&(FlagX|FlagY)
	}
}

//
func (c *CPU) add8(a, b, carry byte) byte {
	sum := uint16(a) + uint16(b) + uint16(carry)
	r := byte(sum)
	c.F = sz53[r] | (a^b^r)&FlagH |
		flagIf((a^r)&(b^r)&0x80 != 0, FlagPV) | flagIf(sum > 0xFF, FlagC)
	return r
}

//
func (c *CPU) sub8(a, b, carry byte) byte {
	diff := int(a) - int(b) - int(carry)
	r := byte(diff)
	c.F = sz53[r] | FlagN | (a^b^r)&FlagH |
		flagIf((a^b)&(a^r)&0x80 != 0, FlagPV) | flagIf(diff < 0, FlagC)
	return r
}

//
func (c *CPU) inc8(v byte) byte {
	r := v + 1
	c.F = c.F&FlagC | sz53[r] |
		flagIf(v&0x0F == 0x0F, FlagH) | flagIf(v == 0x7F, FlagPV)
	return r
}

//
func (c *CPU) dec8(v byte) byte {
	r := v - 1
	c.F = c.F&FlagC | FlagN | sz53[r] |
		flagIf(v&0x0F == 0, FlagH) | flagIf(v == 0x80, FlagPV)
	return r
}

//
func (c *CPU) add16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	r := uint16(sum)
	c.WZ = a + 1
	c.F = c.F&(FlagS|FlagZ|FlagPV) | byte(r>>8)&(FlagX|FlagY) |
		byte((a^b^r)>>8)&FlagH | flagIf(sum > 0xFFFF, FlagC)
	return r
}

//
func (c *CPU) adc16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b) + uint32(c.F&FlagC)
	r := uint16(sum)
	c.WZ = a + 1
	c.F = byte(r>>8)&(FlagS|FlagX|FlagY) | flagIf(r == 0, FlagZ) |
		byte((a^b^r)>>8)&FlagH | flagIf((a^r)&(b^r)&0x8000 != 0, FlagPV) |
		flagIf(sum > 0xFFFF, FlagC)
	return r
}

//
func (c *CPU) sbc16(a, b uint16) uint16 {
	diff := int32(a) - int32(b) - int32(c.F&FlagC)
	r := uint16(diff)
	c.WZ = a + 1
	c.F = byte(r>>8)&(FlagS|FlagX|FlagY) | flagIf(r == 0, FlagZ) | FlagN |
		byte((a^b^r)>>8)&FlagH | flagIf((a^b)&(a^r)&0x8000 != 0, FlagPV) |
		flagIf(diff < 0, FlagC)
	return r
}

// rotate and shift operations of the CB table, in encoding order
const (
	rotRLC byte = iota
	rotRRC
	rotRL
	rotRR
	rotSLA
	rotSRA
	rotSLL
	rotSRL
)

var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// rotate performs a CB rotation or shift, setting all flags.
func (c *CPU) rotate(op, v byte) byte {

	var r, carry byte

	switch op {
	case rotRLC:
		carry = v >> 7
		r = v<<1 | carry
	case rotRRC:
		carry = v & 1
		r = v>>1 | carry<<7
	case rotRL:
		carry = v >> 7
		r = v<<1 | c.F&FlagC
	case rotRR:
		carry = v & 1
		r = v>>1 | (c.F&FlagC)<<7
	case rotSLA:
		carry = v >> 7
		r = v << 1
	case rotSRA:
		carry = v & 1
		r = v>>1 | v&0x80
	case rotSLL:
		carry = v >> 7
		r = v<<1 | 1
	case rotSRL:
		carry = v & 1
		r = v >> 1
	}

	c.F = sz53p[r] | carry
	return r
}

// rotateA implements RLCA, RRCA, RLA and RRA, which keep S, Z and P/V.
func (c *CPU) rotateA(op byte) {
	keep := c.F & (FlagS | FlagZ | FlagPV)
	c.A = c.rotate(op, c.A)
	c.F = keep | c.F&FlagC | c.A&(FlagX|FlagY)
}

// bit tests bit n of v. X and Y are taken from xy, which is the operand for
// register forms and the high byte of the internal address latch otherwise.
func (c *CPU) bit(n, v, xy byte) {
	set := v & (1 << n)
	c.F = c.F&FlagC | FlagH | xy&(FlagX|FlagY) |
		flagIf(set == 0, FlagZ|FlagPV) | flagIf(n == 7 && set != 0, FlagS)
}

/*
	daaRow is one line of the DAA correction table. A row matches when N, C and
	H are as given, and the high and low nibbles of A fall into the given
	ranges.
*/
type daaRow struct {
	n, c       bool
	h          byte
	hiMin      byte
	hiMax      byte
	loMin      byte
	loMax      byte
	correction byte
	carry      bool
}

var daaTable = [13]daaRow{
	{false, false, 0, 0x0, 0x9, 0x0, 0x9, 0x00, false},
	{false, false, 0, 0x0, 0x8, 0xA, 0xF, 0x06, false},
	{false, false, 1, 0x0, 0x8, 0x0, 0xF, 0x06, false},
	{false, false, 0, 0xA, 0xF, 0x0, 0x9, 0x60, true},
	{false, false, 0, 0x9, 0xF, 0xA, 0xF, 0x66, true},
	{false, false, 1, 0xA, 0xF, 0x0, 0xF, 0x66, true},
	{false, true, 0, 0x0, 0xF, 0x0, 0x9, 0x60, true},
	{false, true, 0, 0x0, 0xF, 0xA, 0xF, 0x66, true},
	{false, true, 1, 0x0, 0xF, 0x0, 0xF, 0x66, true},
	{true, false, 0, 0x0, 0x9, 0x0, 0x9, 0x00, false},
	{true, false, 1, 0x0, 0x8, 0x6, 0xF, 0xFA, false},
	{true, true, 0, 0x7, 0xF, 0x0, 0x9, 0xA0, true},
	{true, true, 1, 0x6, 0xF, 0x6, 0xF, 0x9A, true},
}

/*
	daaCorrection looks up the correction for A in the DAA table. Operands
	that are not valid BCD for the preceding operation match no row, and get
	the correction the hardware applies: 0x06 when H is set or the low nibble
	is above 9, 0x60 when C is set or A is above 0x99, negated after a
	subtraction.
*/
func daaCorrection(a byte, n, c, h bool) (byte, bool) {

	hi, lo := a>>4, a&0x0F
	hf := byte(0)
	if h {
		hf = 1
	}

	for _, r := range daaTable {
		if r.n == n && r.c == c && r.h == hf &&
			hi >= r.hiMin && hi <= r.hiMax && lo >= r.loMin && lo <= r.loMax {
			return r.correction, r.carry
		}
	}

	var corr byte
	carry := c
	if h || lo > 9 {
		corr = 0x06
	}
	if c || a > 0x99 {
		corr |= 0x60
		carry = true
	}
	if n {
		corr = -corr
	}
	return corr, carry
}

//
func (c *CPU) daa() {
	a := c.A
	n := c.F&FlagN != 0
	corr, carry := daaCorrection(a, n, c.F&FlagC != 0, c.F&FlagH != 0)
	c.A = a + corr
	c.F = sz53p[c.A] | c.F&FlagN | (a^c.A)&FlagH | flagIf(carry, FlagC)
}
