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

// flag bits of the F register
const (
	FlagC  byte = 0x01
	FlagN  byte = 0x02
	FlagPV byte = 0x04
	FlagX  byte = 0x08
	FlagH  byte = 0x10
	FlagY  byte = 0x20
	FlagZ  byte = 0x40
	FlagS  byte = 0x80
)

/*
	Registers is the complete programmer visible state of a Z80. Pairs are
	stored as their constituent bytes, the pair accessors combine them with the
	high register in the upper byte.
*/
type Registers struct {
	A, F, B, C, D, E, H, L         byte
	A2, F2, B2, C2, D2, E2, H2, L2 byte

	IX, IY uint16
	SP, PC uint16

	I, R byte

	IFF1, IFF2 bool
	IM         byte
	Halted     bool
}

// Reset puts registers into the power-on state.
func (r *Registers) Reset() {
	*r = Registers{}
	r.SetAF(0xFFFF)
	r.SP = 0xFFFF
}

//
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

//
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

//
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

//
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

//
func (r *Registers) AF2() uint16 { return uint16(r.A2)<<8 | uint16(r.F2) }

//
func (r *Registers) BC2() uint16 { return uint16(r.B2)<<8 | uint16(r.C2) }

//
func (r *Registers) DE2() uint16 { return uint16(r.D2)<<8 | uint16(r.E2) }

//
func (r *Registers) HL2() uint16 { return uint16(r.H2)<<8 | uint16(r.L2) }

//
func (r *Registers) SetAF(v uint16) { r.A, r.F = byte(v>>8), byte(v) }

//
func (r *Registers) SetBC(v uint16) { r.B, r.C = byte(v>>8), byte(v) }

//
func (r *Registers) SetDE(v uint16) { r.D, r.E = byte(v>>8), byte(v) }

//
func (r *Registers) SetHL(v uint16) { r.H, r.L = byte(v>>8), byte(v) }

//
func (r *Registers) SetAF2(v uint16) { r.A2, r.F2 = byte(v>>8), byte(v) }

//
func (r *Registers) SetBC2(v uint16) { r.B2, r.C2 = byte(v>>8), byte(v) }

//
func (r *Registers) SetDE2(v uint16) { r.D2, r.E2 = byte(v>>8), byte(v) }

//
func (r *Registers) SetHL2(v uint16) { r.H2, r.L2 = byte(v>>8), byte(v) }

//
func (r *Registers) Flag(mask byte) bool {
	return r.F&mask != 0
}

//
func (r *Registers) SetFlag(mask byte, on bool) {
	if on {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

// ExAF swaps AF with AF'.
func (r *Registers) ExAF() {
	r.A, r.A2 = r.A2, r.A
	r.F, r.F2 = r.F2, r.F
}

// Exx swaps BC, DE, HL with their shadow counterparts.
func (r *Registers) Exx() {
	r.B, r.B2 = r.B2, r.B
	r.C, r.C2 = r.C2, r.C
	r.D, r.D2 = r.D2, r.D
	r.E, r.E2 = r.E2, r.E
	r.H, r.H2 = r.H2, r.H
	r.L, r.L2 = r.L2, r.L
}

// IncrementR advances the 7 bit refresh counter, keeping bit 7.
func (r *Registers) IncrementR() {
	r.R = (r.R & 0x80) | ((r.R + 1) & 0x7F)
}
