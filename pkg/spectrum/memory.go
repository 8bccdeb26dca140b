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
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

//
const PageSize = 0x4000

//
type Model int

const (
	Model48K Model = iota
	Model128K
)

//
func (m Model) String() string {
	if m == Model128K {
		return "128k"
	}
	return "48k"
}

//
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "48k", "48":
		return Model48K, nil
	case "128k", "128":
		return Model128K, nil
	}
	return Model48K, fmt.Errorf("unknown machine model: '%s'", s)
}

/*
	MemorySelect is the paging latch written through port 0x7FFD:

		bits 0-2  RAM bank mapped at 0xC000
		bit  3    shadow screen (video output from RAM page 7)
		bit  4    ROM select
		bit  5    paging lock, until next reset
*/
type MemorySelect byte

const (
	RamBankMask      MemorySelect = 0x07
	ShadowScreenMask MemorySelect = 0x08
	RomSelectMask    MemorySelect = 0x10
	PagingLockMask   MemorySelect = 0x20
)

const (
	RamBankShift      = 0
	ShadowScreenShift = 3
	RomSelectShift    = 4
	PagingLockShift   = 5
)

//
func (s MemorySelect) RamBank() int {
	return int((s & RamBankMask) >> RamBankShift)
}

//
func (s MemorySelect) ShadowScreen() bool {
	return (s&ShadowScreenMask)>>ShadowScreenShift == 1
}

//
func (s MemorySelect) RomSelect() int {
	return int((s & RomSelectMask) >> RomSelectShift)
}

//
func (s MemorySelect) PagingLock() bool {
	return (s&PagingLockMask)>>PagingLockShift == 1
}

// page is one 16 KiB bank as seen by the memory map
type page interface {
	read(offset uint16) byte
	write(offset uint16, v byte)
	load(data []byte)
	store(buf []byte)
}

//
type plainPage [PageSize]byte

func (p *plainPage) read(offset uint16) byte { return p[offset] }

func (p *plainPage) write(offset uint16, v byte) { p[offset] = v }

func (p *plainPage) load(data []byte) { copy(p[:], data) }

func (p *plainPage) store(buf []byte) { copy(buf, p[:]) }

/*
	Memory is the banked memory map of a 48K or 128K machine. ROM pages can
	only be replaced with LoadROM, CPU writes to them are dropped. RAM pages 5
	and 7 are video pages that keep the screen in host colour format.
*/
type Memory struct {
	model Model
	state MemorySelect
	rom   [2]*plainPage
	ram   [8]page
	video [2]*VideoPage
	view  *VideoPage
}

//
func NewMemory(model Model) *Memory {

	m := &Memory{
		model: model,
		rom:   [2]*plainPage{{}, {}},
		video: [2]*VideoPage{{}, {}},
	}

	m.ram[0] = &plainPage{}
	m.ram[2] = &plainPage{}
	m.ram[5] = m.video[0]

	if model == Model128K {
		for _, b := range []int{1, 3, 4, 6} {
			m.ram[b] = &plainPage{}
		}
		m.ram[7] = m.video[1]
	}

	m.view = m.video[0]
	return m
}

//
func (m *Memory) Model() Model {
	return m.model
}

//
func (m *Memory) State() MemorySelect {
	return m.state
}

/*
	SetState latches a new paging state. With the paging lock set, or on a
	48K machine, this does nothing. The renderer view follows the shadow
	screen bit.
*/
func (m *Memory) SetState(s MemorySelect) {

	if m.model == Model48K || m.state.PagingLock() {
		return
	}

	old := m.state
	m.state = s

	if old.ShadowScreen() != s.ShadowScreen() {
		if s.ShadowScreen() {
			m.view = m.video[1]
		} else {
			m.view = m.video[0]
		}
	}

	log.WithFields(log.Fields{
		"bank":   s.RamBank(),
		"rom":    s.RomSelect(),
		"shadow": s.ShadowScreen(),
		"lock":   s.PagingLock(),
	}).Debug("paging")
}

// ForceState sets the paging state regardless of the lock, used when
// resetting or restoring a snapshot.
func (m *Memory) ForceState(s MemorySelect) {
	if m.model == Model48K {
		s = 0
	}
	m.state = s
	if s.ShadowScreen() {
		m.view = m.video[1]
	} else {
		m.view = m.video[0]
	}
}

//
func (m *Memory) ReadByte(addr uint16) byte {
	switch {
	case addr < 0x4000:
		return m.rom[m.romIndex()][addr]
	case addr < 0x8000:
		return m.ram[5].read(addr - 0x4000)
	case addr < 0xC000:
		return m.ram[2].read(addr - 0x8000)
	}
	return m.ram[m.state.RamBank()].read(addr - 0xC000)
}

//
func (m *Memory) WriteByte(addr uint16, v byte) {
	switch {
	case addr < 0x4000:
		// ROM
	case addr < 0x8000:
		m.ram[5].write(addr-0x4000, v)
	case addr < 0xC000:
		m.ram[2].write(addr-0x8000, v)
	default:
		m.ram[m.state.RamBank()].write(addr-0xC000, v)
	}
}

//
func (m *Memory) romIndex() int {
	if m.model == Model48K {
		return 0
	}
	return m.state.RomSelect()
}

// HasPage tells whether RAM bank exists on this machine.
func (m *Memory) HasPage(bank int) bool {
	return bank >= 0 && bank < len(m.ram) && m.ram[bank] != nil
}

// Pages lists the RAM banks present, in ascending order.
func (m *Memory) Pages() []int {
	var ret []int
	for b := range m.ram {
		if m.ram[b] != nil {
			ret = append(ret, b)
		}
	}
	return ret
}

// ReadPage returns a copy of RAM bank in Spectrum format.
func (m *Memory) ReadPage(bank int) ([]byte, error) {
	if !m.HasPage(bank) {
		return nil, fmt.Errorf("RAM page %d not available on %s machine",
			bank, m.model)
	}
	buf := make([]byte, PageSize)
	m.ram[bank].store(buf)
	return buf, nil
}

// WritePage replaces the contents of RAM bank with data in Spectrum format.
func (m *Memory) WritePage(bank int, data []byte) error {
	if !m.HasPage(bank) {
		return fmt.Errorf("RAM page %d not available on %s machine",
			bank, m.model)
	}
	if len(data) != PageSize {
		return fmt.Errorf("invalid page size: %d", len(data))
	}
	m.ram[bank].load(data)
	return nil
}

// LoadROM replaces ROM page ix with the given 16 KiB image.
func (m *Memory) LoadROM(ix int, data []byte) error {
	if ix < 0 || ix > 1 {
		return fmt.Errorf("invalid ROM page: %d", ix)
	}
	if len(data) != PageSize {
		return fmt.Errorf("invalid ROM size: %d", len(data))
	}
	m.rom[ix].load(data)
	log.WithField("page", ix).Debug("ROM loaded")
	return nil
}

// Screen returns a read-only view of the video page being displayed. The view
// follows shadow screen switches.
func (m *Memory) Screen() ScreenView {
	return ScreenView{mem: m}
}

// ToggleFlash swaps the flash phase of all flashing attributes.
func (m *Memory) ToggleFlash() {
	for _, v := range m.video {
		v.toggleFlash()
	}
}

// Clear zeroes all RAM pages.
func (m *Memory) Clear() {
	zero := make([]byte, PageSize)
	for _, p := range m.ram {
		if p != nil {
			p.load(zero)
		}
	}
}
