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

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/z80"
)

// frames between flash phase changes
const flashFrames = 32

// data bus value during interrupt acknowledge, nothing drives the bus
const interruptData = 0xFF

// border colour after reset
const resetBorder = 5

//
type Options struct {
	// Core selects the CPU implementation by registered name, empty for
	// the default interpreter.
	Core string
	// Mouse attaches a Kempston mouse.
	Mouse bool
}

/*
	Machine aggregates CPU, memory map, and ports of one Spectrum. It is the
	bus the CPU runs against. A Machine is not safe for concurrent use, the
	owner needs to serialize access.
*/
type Machine struct {
	model     Model
	timing    ULATiming
	mem       *Memory
	ports     *Ports
	cpu       z80.Core
	frames    int
	romLoaded [2]bool
}

//
func NewMachine(model Model, opts Options) (*Machine, error) {

	m := &Machine{
		model:  model,
		timing: TimingFor(model),
		mem:    NewMemory(model),
	}
	m.ports = NewPorts(m.mem)

	if opts.Mouse {
		m.ports.AttachMouse(&Mouse{})
	}

	cpu, err := z80.NewCore(opts.Core, m)
	if err != nil {
		return nil, err
	}
	m.cpu = cpu

	log.WithFields(log.Fields{
		"model": model,
		"core":  opts.Core,
	}).Debug("machine created")

	m.Reset()
	return m, nil
}

// Reset resets CPU, paging, and peripherals. RAM contents are kept.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.cpu.SetClock(0)
	m.mem.ForceState(0)
	m.ports.Reset()
	m.ports.SetBorder(resetBorder)
	m.frames = 0
}

/*
	LoadROM loads a 16 KiB ROM image into ROM page 0 or 1. The 48K model only
	has page 0. On a 128K machine without a page 1 image, page 1 mirrors
	page 0.
*/
func (m *Machine) LoadROM(page int, data []byte) error {

	if m.model == Model48K && page != 0 {
		return fmt.Errorf("48k machine has only one ROM page")
	}

	if err := m.mem.LoadROM(page, data); err != nil {
		return err
	}
	m.romLoaded[page] = true

	if m.model == Model128K && page == 0 && !m.romLoaded[1] {
		return m.mem.LoadROM(1, data)
	}
	return nil
}

/*
	RunFrame runs the CPU for one frame and then raises the frame interrupt.
	Instructions are never split, so a frame may overshoot its budget; the
	overshoot is carried into the next frame. Returns the T-states used.
*/
func (m *Machine) RunFrame() int {

	used := 0
	if budget := m.timing.FrameTStates - m.cpu.Clock(); budget > 0 {
		used = m.cpu.Step(budget)
	}

	m.cpu.SetClock(m.cpu.Clock() - m.timing.FrameTStates)
	m.cpu.Interrupt(interruptData)

	m.frames++
	if m.frames%flashFrames == 0 {
		m.mem.ToggleFlash()
	}

	return used
}

// --- z80.Bus & z80.Contender ------------------------------------------------

//
func (m *Machine) ReadByte(addr uint16) byte {
	return m.mem.ReadByte(addr)
}

//
func (m *Machine) WriteByte(addr uint16, v byte) {
	m.mem.WriteByte(addr, v)
}

//
func (m *Machine) Input(portLow, portHigh byte) byte {
	return m.ports.Input(portLow, portHigh)
}

//
func (m *Machine) Output(portLow, portHigh, data byte) {
	m.ports.Output(portLow, portHigh, data)
}

//
func (m *Machine) Contend(addr uint16, tstate int) int {
	if !contended(addr) {
		return 0
	}
	return m.timing.Delay(tstate)
}

// --- accessors --------------------------------------------------------------

//
func (m *Machine) Model() Model {
	return m.model
}

//
func (m *Machine) Timing() ULATiming {
	return m.timing
}

//
func (m *Machine) CPU() z80.Core {
	return m.cpu
}

//
func (m *Machine) Registers() *z80.Registers {
	return m.cpu.Regs()
}

//
func (m *Machine) Memory() *Memory {
	return m.mem
}

//
func (m *Machine) Ports() *Ports {
	return m.ports
}

// Frames returns the number of frames run since the last reset.
func (m *Machine) Frames() int {
	return m.frames
}

// NMI triggers a non-maskable interrupt, serviced at the next instruction
// boundary.
func (m *Machine) NMI() {
	m.cpu.NMI()
}

// Is48KLocked tells whether a 128K machine has been locked into 48K mode,
// with the 48K BASIC ROM selected and paging disabled.
func (m *Machine) Is48KLocked() bool {
	s := m.mem.State()
	return m.model == Model48K || (s.RomSelect() == 1 && s.PagingLock())
}
