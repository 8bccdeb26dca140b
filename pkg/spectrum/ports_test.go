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

import (
	"testing"
)

//
func TestKeyboardRows(t *testing.T) {

	p := NewPorts(NewMemory(Model48K))

	if err := p.KeyDown(0, 1); err != nil { // Z
		t.Fatal(err)
	}
	if err := p.KeyDown(7, 0); err != nil { // SPACE
		t.Fatal(err)
	}

	tests := []struct {
		high byte
		want byte
	}{
		{0xFE, 0xFD},
		{0xFD, 0xFF},
		{0x7F, 0xFE},
		{0x00, 0xFC},
		{0x7E, 0xFC},
	}

	for _, tc := range tests {
		if got := p.Input(0xFE, tc.high); got != tc.want {
			t.Fatalf("row 0x%02X: got 0x%02X, want 0x%02X", tc.high, got, tc.want)
		}
	}

	p.KeyUp(0, 1)
	if got := p.Input(0xFE, 0xFE); got != 0xFF {
		t.Fatalf("key still down: 0x%02X", got)
	}

	if err := p.KeyDown(8, 0); err == nil {
		t.Fatal("expected error for invalid row")
	}
	if err := p.KeyDown(0, 5); err == nil {
		t.Fatal("expected error for invalid bit")
	}
}

//
func TestBorderAndBeeper(t *testing.T) {

	p := NewPorts(NewMemory(Model48K))
	p.Output(0xFE, 0x00, 0x1A)

	if p.Border() != 0x02 {
		t.Fatalf("border: 0x%02X", p.Border())
	}
	if !p.Beeper() {
		t.Fatal("beeper not set")
	}
}

//
func TestAYRegisters(t *testing.T) {

	p := NewPorts(NewMemory(Model128K))

	if got := p.Input(0xFD, 0xFF); got != 0xFF {
		t.Fatalf("unselected read: 0x%02X", got)
	}

	p.Output(0xFD, 0xFF, 7)
	p.Output(0xFD, 0xBF, 0x38)
	if got := p.Input(0xFD, 0xFF); got != 0x38 {
		t.Fatalf("register 7: 0x%02X", got)
	}

	p.Output(0xF5, 0xC0, 8)
	p.Output(0xFD, 0xBF, 0x0F)
	if p.AY().Registers[8] != 0x0F || p.AY().Selected != 8 {
		t.Fatal("alternative select port not decoded")
	}
}

//
func TestPagingPort(t *testing.T) {

	mem := NewMemory(Model128K)
	p := NewPorts(mem)

	p.Output(0xFD, 0x7F, 0x1B)
	if mem.State() != 0x1B {
		t.Fatalf("state: 0x%02X", byte(mem.State()))
	}
	if !mem.Screen().Shadow() {
		t.Fatal("shadow screen not selected")
	}
}

//
func TestUnmappedPorts(t *testing.T) {

	p := NewPorts(NewMemory(Model48K))

	if got := p.Input(0x1F, 0x00); got != 0xA0 {
		t.Fatalf("default read: 0x%02X", got)
	}

	p.Output(0x3B, 0x00, 0x55)
	if got := p.Input(0x1F, 0x00); got != 0xB5 {
		t.Fatalf("read after unmapped write: 0x%02X", got)
	}

	// mouse ports only decode with a mouse attached
	if got := p.Input(0xDF, 0xFB); got != 0xB5 {
		t.Fatalf("mouse port without mouse: 0x%02X", got)
	}

	p.AttachMouse(&Mouse{Buttons: 0xFE, X: 12, Y: 34})
	if p.Input(0xDF, 0xFA) != 0xFE || p.Input(0xDF, 0xFB) != 12 ||
		p.Input(0xDF, 0xFF) != 34 {
		t.Fatal("mouse ports not decoded")
	}
}

//
func TestContentionDelay(t *testing.T) {

	tests := []struct {
		timing ULATiming
		tstate int
		want   int
	}{
		{Timing48K, 64*224 - 1, 6},
		{Timing48K, 64*224 + 0, 5},
		{Timing48K, 64*224 + 5, 0},
		{Timing48K, 64*224 + 6, 0},
		{Timing48K, 64*224 + 7, 6},
		{Timing48K, 64*224 + 127, 0},
		{Timing48K, 64*224 + 130, 0},
		{Timing48K, 63*224 + 10, 0},
		{Timing48K, 256*224 + 10, 0},
		{Timing128K, 63*228 - 1, 6},
		{Timing128K, 62*228 + 10, 0},
	}

	for _, tc := range tests {
		if got := tc.timing.Delay(tc.tstate); got != tc.want {
			t.Fatalf("T-state %d: got %d, want %d", tc.tstate, got, tc.want)
		}
	}
}
