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
	"testing"
)

//
type testBus struct {
	mem     [0x10000]byte
	ports   map[uint16]byte
	outputs []uint16
}

func (b *testBus) ReadByte(addr uint16) byte { return b.mem[addr] }

func (b *testBus) WriteByte(addr uint16, v byte) { b.mem[addr] = v }

func (b *testBus) Input(lo, hi byte) byte {
	if v, ok := b.ports[uint16(hi)<<8|uint16(lo)]; ok {
		return v
	}
	return 0xFF
}

func (b *testBus) Output(lo, hi, v byte) {
	b.outputs = append(b.outputs, uint16(hi)<<8|uint16(lo))
}

//
type testRig struct {
	bus *testBus
	cpu *CPU
}

//
func newTestRig() *testRig {
	bus := &testBus{ports: map[uint16]byte{}}
	return &testRig{bus: bus, cpu: NewCPU(bus)}
}

// load resets the CPU, places program at start, and points PC there.
func (r *testRig) load(start uint16, program ...byte) {
	r.cpu.Reset()
	copy(r.bus.mem[start:], program)
	r.cpu.PC = start
	r.cpu.SP = 0xFFF0
}

// step executes exactly one instruction and returns its T-states.
func (r *testRig) step() int {
	return r.cpu.Step(1)
}

//
func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got 0x%02X, want 0x%02X", name, got, want)
	}
}

//
func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got 0x%04X, want 0x%04X", name, got, want)
	}
}

//
func requireEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %d, want %d", name, got, want)
	}
}

//
func requireTrue(t *testing.T, name string, cond bool) {
	t.Helper()
	if !cond {
		t.Fatalf("%s: expected to hold", name)
	}
}
