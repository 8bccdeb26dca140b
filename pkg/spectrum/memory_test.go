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
	"bytes"
	"testing"
)

//
func TestMemorySelectLayout(t *testing.T) {

	tests := []struct {
		mask  MemorySelect
		shift int
	}{
		{RamBankMask, RamBankShift},
		{ShadowScreenMask, ShadowScreenShift},
		{RomSelectMask, RomSelectShift},
		{PagingLockMask, PagingLockShift},
	}

	var all MemorySelect
	for _, tc := range tests {
		if tc.mask&all != 0 {
			t.Fatalf("mask 0x%02X overlaps", tc.mask)
		}
		if tc.mask>>tc.shift&1 != 1 {
			t.Fatalf("mask 0x%02X does not start at bit %d", tc.mask, tc.shift)
		}
		all |= tc.mask
	}
	if all != 0x3F {
		t.Fatalf("masks cover 0x%02X", all)
	}

	s := MemorySelect(0x3D)
	if s.RamBank() != 5 || !s.ShadowScreen() || s.RomSelect() != 1 ||
		!s.PagingLock() {
		t.Fatalf("unexpected decode of 0x%02X", byte(s))
	}
}

//
func TestPageAddressing(t *testing.T) {

	m := NewMemory(Model128K)

	for bank := 0; bank < 8; bank++ {
		m.ForceState(MemorySelect(bank))
		m.WriteByte(0xC000, byte(0x10+bank))
		m.WriteByte(0xFFFF, byte(0x20+bank))
	}

	for bank := 0; bank < 8; bank++ {
		p, err := m.ReadPage(bank)
		if err != nil {
			t.Fatal(err)
		}
		if p[0] != byte(0x10+bank) || p[PageSize-1] != byte(0x20+bank) {
			t.Fatalf("bank %d: got 0x%02X, 0x%02X", bank, p[0], p[PageSize-1])
		}
	}

	// fixed mappings
	m.ForceState(0)
	m.WriteByte(0x4000, 0xAA)
	m.WriteByte(0x8000, 0xBB)
	p5, _ := m.ReadPage(5)
	p2, _ := m.ReadPage(2)
	if p5[0] != 0xAA || p2[0] != 0xBB {
		t.Fatal("fixed pages not mapped at 0x4000 and 0x8000")
	}
	m.ForceState(5)
	if m.ReadByte(0xC000) != 0xAA {
		t.Fatal("page 5 not visible at 0xC000")
	}
}

//
func TestROMReadOnly(t *testing.T) {

	m := NewMemory(Model128K)
	rom0 := bytes.Repeat([]byte{0x11}, PageSize)
	rom1 := bytes.Repeat([]byte{0x22}, PageSize)
	if err := m.LoadROM(0, rom0); err != nil {
		t.Fatal(err)
	}
	if err := m.LoadROM(1, rom1); err != nil {
		t.Fatal(err)
	}

	m.WriteByte(0x0000, 0x99)
	if m.ReadByte(0x0000) != 0x11 {
		t.Fatal("ROM was written")
	}
	m.ForceState(RomSelectMask)
	if m.ReadByte(0x3FFF) != 0x22 {
		t.Fatal("ROM 1 not selected")
	}
}

//
func TestPagingLock(t *testing.T) {

	m := NewMemory(Model128K)
	m.SetState(3 | PagingLockMask)
	if m.State().RamBank() != 3 || !m.State().PagingLock() {
		t.Fatal("state not latched")
	}

	for v := 0; v < 256; v++ {
		m.SetState(MemorySelect(v))
		if m.State() != 3|PagingLockMask {
			t.Fatalf("locked state changed by 0x%02X", v)
		}
	}

	m.ForceState(0)
	m.SetState(4)
	if m.State().RamBank() != 4 {
		t.Fatal("unlocked state did not change")
	}
}

//
func Test48KMemory(t *testing.T) {

	m := NewMemory(Model48K)

	if got := m.Pages(); len(got) != 3 || got[0] != 0 || got[1] != 2 ||
		got[2] != 5 {
		t.Fatalf("unexpected pages: %v", got)
	}
	if _, err := m.ReadPage(7); err == nil {
		t.Fatal("expected error for page 7 on 48k")
	}

	m.SetState(3)
	if m.State().RamBank() != 0 {
		t.Fatal("48k machine must not page")
	}
	m.WriteByte(0xC000, 0x42)
	p0, _ := m.ReadPage(0)
	if p0[0] != 0x42 {
		t.Fatal("0xC000 not mapped to page 0")
	}
}

//
func TestVideoPageRoundTrip(t *testing.T) {

	m := NewMemory(Model128K)

	data := make([]byte, PageSize)
	for ix := range data {
		data[ix] = byte(ix * 7)
	}

	for _, bank := range []int{5, 7} {
		if err := m.WritePage(bank, data); err != nil {
			t.Fatal(err)
		}
		got, _ := m.ReadPage(bank)
		if !bytes.Equal(got, data) {
			t.Fatalf("page %d round trip failed", bank)
		}
	}

	// last attribute byte must be included
	if m.video[0].Attributes[AttributeCount-1] !=
		FromSpectrumColor(data[ScreenBytes-1]) {
		t.Fatal("last attribute not converted")
	}

	m.ToggleFlash()
	got, _ := m.ReadPage(5)
	if !bytes.Equal(got, data) {
		t.Fatal("page content changed by flash phase")
	}
}

//
func TestShadowScreenView(t *testing.T) {

	m := NewMemory(Model128K)
	view := m.Screen()

	m.WriteByte(0x4000, 0x55) // page 5
	m.ForceState(7)
	m.WriteByte(0xC000, 0xAA) // page 7

	if view.Shadow() || view.Pixel(0) != 0x55 {
		t.Fatal("view should show page 5")
	}

	m.SetState(7 | ShadowScreenMask)
	if !view.Shadow() || view.Pixel(0) != 0xAA {
		t.Fatal("view should follow shadow screen")
	}

	m.SetState(7)
	if view.Shadow() {
		t.Fatal("view should return to page 5")
	}
}

//
func TestScreenBytes(t *testing.T) {

	m := NewMemory(Model48K)
	m.WriteByte(0x4000, 0x81)
	m.WriteByte(0x5800, 0xC7)
	m.WriteByte(0x5AFF, 0x38)

	b := m.Screen().Bytes()
	if len(b) != ScreenBytes || b[0] != 0x81 || b[PixelBytes] != 0xC7 ||
		b[ScreenBytes-1] != 0x38 {
		t.Fatal("unexpected screen bytes")
	}
}
