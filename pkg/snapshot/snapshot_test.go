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
	"testing"

	"github.com/xelalexv/zxcore/pkg/spectrum"
	"github.com/xelalexv/zxcore/pkg/z80"
)

//
func newMachine(t *testing.T, model spectrum.Model) *spectrum.Machine {
	m, err := spectrum.NewMachine(model, spectrum.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

//
func testRegisters() z80.Registers {
	return z80.Registers{
		A: 0x12, F: 0x34, B: 0x56, C: 0x78, D: 0x9A, E: 0xBC, H: 0xDE, L: 0xF0,
		A2: 0x21, F2: 0x43, B2: 0x65, C2: 0x87, D2: 0xA9, E2: 0xCB, H2: 0xED,
		L2: 0x0F, IX: 0x1357, IY: 0x2468, SP: 0xFF00, PC: 0x8123,
		I: 0x3F, R: 0xC5, IFF1: true, IFF2: true, IM: 2,
	}
}

// v1Header builds the 30 byte header of a version 1 file.
func v1Header(flags1 byte, pc uint16) []byte {
	h := make([]byte, headerLength)
	h[0], h[1] = 0xAA, 0x55
	h[6], h[7] = byte(pc), byte(pc>>8)
	h[8], h[9] = 0x00, 0x80
	h[11] = 0x7F
	h[12] = flags1
	h[27], h[28] = 1, 0
	h[29] = 1
	return h
}

//
func TestV1Flags1Compatibility(t *testing.T) {

	data := append(v1Header(0xFF, 0x1234), make([]byte, main48Size)...)

	img, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if img.Version != 1 || img.Model != spectrum.Model48K {
		t.Fatalf("version %d, model %s", img.Version, img.Model)
	}
	if img.Border != 0 {
		t.Fatalf("border: %d", img.Border)
	}
	if img.Registers.R != 0xFF {
		t.Fatalf("R: 0x%02X", img.Registers.R)
	}
	if img.Compressed {
		t.Fatal("255 must not be taken as compressed")
	}
	if img.Registers.PC != 0x1234 || img.Registers.SP != 0x8000 ||
		!img.Registers.IFF1 || img.Registers.IFF2 || img.Registers.IM != 1 {
		t.Fatal("registers not decoded")
	}
}

//
func TestV1Compressed(t *testing.T) {

	main := make([]byte, main48Size)
	copy(main, testPage(1))
	copy(main[spectrum.PageSize:], testPage(2))
	copy(main[2*spectrum.PageSize:], testPage(3))

	data := v1Header(0x20|0x06, 0x4000)
	data = append(data, Compress(main)...)
	data = append(data, 0x00, 0xED, 0xED, 0x00)

	img, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if img.Border != 3 {
		t.Fatalf("border: %d", img.Border)
	}

	for ix, bank := range []int{5, 2, 0} {
		want := main[ix*spectrum.PageSize : (ix+1)*spectrum.PageSize]
		if !bytes.Equal(img.Pages[bank], want) {
			t.Fatalf("page %d not decoded", bank)
		}
	}

	scr, err := Screen(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(scr, main[:spectrum.ScreenBytes]) {
		t.Fatal("v1 screen not extracted")
	}
}

//
func TestPageRemap(t *testing.T) {

	img48 := &Image{Model: spectrum.Model48K}
	img128 := &Image{Model: spectrum.Model128K}

	tests := []struct {
		img  *Image
		id   byte
		bank int
		ok   bool
	}{
		{img48, 4, 2, true},
		{img48, 5, 0, true},
		{img48, 8, 5, true},
		{img48, 3, 0, false},
		{img48, 0, 0, false},
		{img48, 10, 0, false},
		{img128, 3, 0, true},
		{img128, 4, 1, true},
		{img128, 8, 5, true},
		{img128, 10, 7, true},
		{img128, 2, 0, false},
		{img128, 11, 0, false},
	}

	for _, tc := range tests {
		bank, ok := tc.img.bankFor(tc.id)
		if ok != tc.ok || (ok && bank != tc.bank) {
			t.Fatalf("%s id %d: got %d/%v, want %d/%v",
				tc.img.Model, tc.id, bank, ok, tc.bank, tc.ok)
		}
	}
}

//
func TestHardwareModes(t *testing.T) {

	tests := []struct {
		mode    byte
		version int
		name    string
		is128   bool
		valid   bool
	}{
		{0, 2, "48k", false, true},
		{3, 2, "128k", true, true},
		{3, 3, "48k + M.G.T.", false, true},
		{4, 3, "128k", true, true},
		{5, 2, "", true, false},
		{12, 3, "Spectrum +2", true, true},
		{10, 3, "Scorpion (256K)", true, false},
		{99, 3, "", true, false},
	}

	for _, tc := range tests {
		name, err := hardwareModeName(tc.mode, tc.version)
		if name != tc.name || (err == nil) != tc.valid {
			t.Fatalf("mode %d v%d: got %q/%v", tc.mode, tc.version, name, err)
		}
		if is128K(tc.mode, tc.version) != tc.is128 {
			t.Fatalf("mode %d v%d: wrong model", tc.mode, tc.version)
		}
	}
}

//
func TestRoundTrip48K(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	for ix, bank := range []int{0, 2, 5} {
		if err := m.Memory().WritePage(bank, testPage(int64(ix+10))); err != nil {
			t.Fatal(err)
		}
	}
	*m.Registers() = testRegisters()
	m.Ports().SetBorder(6)

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if data[6] != 0 || data[7] != 0 {
		t.Fatal("PC field of v3 header must be 0")
	}
	if data[30] != extLengthV3 || data[34] != hwMode48K {
		t.Fatal("unexpected additional header")
	}
	if data[12] != 0x01|6<<1 {
		t.Fatalf("Flags1: 0x%02X", data[12])
	}

	m2 := newMachine(t, spectrum.Model48K)
	if err := Load(bytes.NewReader(data), m2); err != nil {
		t.Fatal(err)
	}

	if *m2.Registers() != testRegisters() {
		t.Fatalf("registers differ: %+v", *m2.Registers())
	}
	if m2.Ports().Border() != 6 {
		t.Fatalf("border: %d", m2.Ports().Border())
	}
	requireSamePages(t, m, m2, 0, 2, 5)
}

//
func TestRoundTrip128K(t *testing.T) {

	m := newMachine(t, spectrum.Model128K)
	for bank := 0; bank < 8; bank++ {
		if err := m.Memory().WritePage(bank, testPage(int64(bank+20))); err != nil {
			t.Fatal(err)
		}
	}
	m.Memory().ForceState(spectrum.MemorySelect(0x1E))
	m.Output(0xFD, 0xFF, 7)
	m.Output(0xFD, 0xBF, 0x3C)
	*m.Registers() = testRegisters()

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	info, err := ReadInfo(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != 3 || info.Model != spectrum.Model128K ||
		info.Hardware != "128k" || info.PC != 0x8123 {
		t.Fatalf("unexpected info: %+v", info)
	}

	m2 := newMachine(t, spectrum.Model128K)
	if err := Load(&buf, m2); err != nil {
		t.Fatal(err)
	}

	if m2.Memory().State() != 0x1E {
		t.Fatalf("paging state: 0x%02X", byte(m2.Memory().State()))
	}
	if m2.Ports().AY().Selected != 7 || m2.Ports().AY().Registers[7] != 0x3C {
		t.Fatal("AY registers not restored")
	}
	requireSamePages(t, m, m2, 0, 1, 2, 3, 4, 5, 6, 7)
}

//
func Test48KSnapshotOn128K(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	m.Memory().WritePage(0, testPage(30))

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	m2 := newMachine(t, spectrum.Model128K)
	if err := Load(&buf, m2); err != nil {
		t.Fatal(err)
	}

	if !m2.Is48KLocked() {
		t.Fatalf("not locked into 48k mode: 0x%02X", byte(m2.Memory().State()))
	}
	requireSamePages(t, m, m2, 0, 2, 5)

	// locked 128K machine saves as 48K, with page 0 at 0xC000
	img, err := Capture(m2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Model != spectrum.Model48K || img.HardwareMode != hwMode48K ||
		len(img.Pages) != 3 {
		t.Fatalf("unexpected capture: %s, mode %d, %d pages",
			img.Model, img.HardwareMode, len(img.Pages))
	}
}

//
func Test128KSnapshotOn48K(t *testing.T) {

	m := newMachine(t, spectrum.Model128K)
	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	m2 := newMachine(t, spectrum.Model48K)
	m2.Registers().PC = 0x4321
	if err := Load(&buf, m2); err == nil {
		t.Fatal("expected error")
	}
	if m2.Registers().PC != 0x4321 {
		t.Fatal("machine changed by failed load")
	}
}

//
func TestMalformedSnapshot(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	m.Memory().WritePage(2, testPage(40))

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	m2 := newMachine(t, spectrum.Model48K)
	m2.WriteByte(0x8000, 0x99)

	for _, bad := range [][]byte{
		data[:20],
		data[:len(data)-1],
		data[:headerLength+2+extLengthV3+2],
	} {
		if err := Load(bytes.NewReader(bad), m2); err == nil {
			t.Fatalf("expected error for %d bytes", len(bad))
		}
		if m2.ReadByte(0x8000) != 0x99 {
			t.Fatal("machine changed by failed load")
		}
	}

	// invalid additional header length
	bad := append([]byte{}, data...)
	bad[30] = 40
	if _, err := Parse(bad); err == nil {
		t.Fatal("expected error for invalid header length")
	}
}

//
func TestUnknownPageSkipped(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	// append a raw block for page id 11
	writeUInt16(&buf, rawBlock)
	buf.WriteByte(11)
	buf.Write(make([]byte, spectrum.PageSize))

	img, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Pages) != 3 {
		t.Fatalf("pages: %v", img.Banks())
	}
}

//
func TestRawBlocks(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	// incompressible page
	page := make([]byte, spectrum.PageSize)
	for ix := range page {
		page[ix] = byte(ix*131 + ix>>7)
	}
	m.Memory().WritePage(5, page)

	img, err := Capture(m)
	if err != nil {
		t.Fatal(err)
	}
	data, err := img.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// first block is page 5
	pos := headerLength + 2 + extLengthV3
	if data[pos] != 0xFF || data[pos+1] != 0xFF || data[pos+2] != 8 {
		t.Fatalf("unexpected block header: % X", data[pos:pos+3])
	}

	scr, err := Screen(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(scr, page[:spectrum.ScreenBytes]) {
		t.Fatal("screen not extracted from raw block")
	}
}

//
func requireSamePages(t *testing.T, m1, m2 *spectrum.Machine, banks ...int) {
	t.Helper()
	for _, bank := range banks {
		p1, err := m1.Memory().ReadPage(bank)
		if err != nil {
			t.Fatal(err)
		}
		p2, err := m2.Memory().ReadPage(bank)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(p1, p2) {
			t.Fatalf("page %d differs", bank)
		}
	}
}

//
func TestTerminatorRecord(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	for ix, bank := range []int{0, 2, 5} {
		if err := m.Memory().WritePage(bank, testPage(int64(ix+20))); err != nil {
			t.Fatal(err)
		}
	}
	*m.Registers() = testRegisters()

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	for _, tail := range [][]byte{
		{0x00, 0x00, 0x08, 0x01, 0x02, 0x03},
		{0x00, 0x00, 0x00, 0x12},
	} {
		data := append(append([]byte{}, buf.Bytes()...), tail...)

		img, err := Parse(data)
		if err != nil {
			t.Fatalf("tail % X: %v", tail, err)
		}
		if len(img.Banks()) != 3 {
			t.Fatalf("tail % X: banks %v", tail, img.Banks())
		}

		m2 := newMachine(t, spectrum.Model48K)
		if err := Load(bytes.NewReader(data), m2); err != nil {
			t.Fatalf("tail % X: %v", tail, err)
		}
		requireSamePages(t, m, m2, 0, 2, 5)

		scr, err := Screen(data)
		if err != nil {
			t.Fatalf("tail % X: %v", tail, err)
		}
		p5, err := m.Memory().ReadPage(5)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(scr, p5[:spectrum.ScreenBytes]) {
			t.Fatalf("tail % X: screen differs", tail)
		}
	}
}

//
func TestApplyClearsPendingInterrupts(t *testing.T) {

	m := newMachine(t, spectrum.Model48K)
	page := make([]byte, spectrum.PageSize)
	page[0x0123] = 0x00 // NOP at 0x8123
	if err := m.Memory().WritePage(2, page); err != nil {
		t.Fatal(err)
	}
	*m.Registers() = testRegisters()

	var buf bytes.Buffer
	if err := Save(m, &buf); err != nil {
		t.Fatal(err)
	}

	m2 := newMachine(t, spectrum.Model48K)
	m2.CPU().NMI()
	m2.CPU().Interrupt(0xFF)
	if err := Load(bytes.NewReader(buf.Bytes()), m2); err != nil {
		t.Fatal(err)
	}

	m2.CPU().Step(1)
	if pc := m2.Registers().PC; pc != 0x8124 {
		t.Fatalf("PC after first step: 0x%04X", pc)
	}
	if !m2.Registers().IFF1 {
		t.Fatal("interrupt was serviced")
	}
}
