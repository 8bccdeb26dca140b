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
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

/*
	Bus is everything the interpreter sees of the machine around it. Ports are
	addressed by their low and high byte, the way the Spectrum decodes them.
*/
type Bus interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)
	Input(portLow, portHigh byte) byte
	Output(portLow, portHigh, data byte)
}

/*
	Contender is optionally implemented by a Bus whose memory delays the CPU.
	Contend returns the wait states for an access to addr starting at the given
	T-state position.
*/
type Contender interface {
	Contend(addr uint16, tstate int) int
}

/*
	Core is the capability any CPU implementation offers to the machine driving
	it. Step runs whole instructions until at least maxTStates have been used
	and returns the T-states actually consumed.
*/
type Core interface {
	Reset()
	Step(maxTStates int) int
	Interrupt(data byte)
	NMI()
	Regs() *Registers
	Clock() int
	SetClock(tstate int)
	// ClearPending drops requested interrupts and internal latches, leaving
	// the registers untouched
	ClearPending()
}

//
type Factory func(bus Bus) Core

//
const DefaultCore = "z80"

var (
	coresLock sync.RWMutex
	cores     = map[string]Factory{}
)

//
func init() {
	RegisterCore(DefaultCore, func(b Bus) Core { return NewCPU(b) })
	RegisterCore("trace", func(b Bus) Core { return NewTracer(NewCPU(b), b) })
}

// RegisterCore makes a core implementation available under kind.
func RegisterCore(kind string, f Factory) {
	coresLock.Lock()
	defer coresLock.Unlock()
	cores[kind] = f
}

// NewCore creates a core of the given kind, attached to bus.
func NewCore(kind string, bus Bus) (Core, error) {

	if kind == "" {
		kind = DefaultCore
	}

	coresLock.RLock()
	f, ok := cores[kind]
	coresLock.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown CPU core: '%s'", kind)
	}

	log.WithField("core", kind).Debug("creating CPU core")
	return f(bus), nil
}

// CoreKinds lists the names of all registered cores.
func CoreKinds() []string {
	coresLock.RLock()
	defer coresLock.RUnlock()
	ret := make([]string, 0, len(cores))
	for k := range cores {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
