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

// T-states an unacknowledged maskable interrupt request stays active
const intPulseLength = 32

//
type indexMode byte

const (
	useHL indexMode = iota
	useIX
	useIY
)

/*
	NewCPU creates the table driven interpreter, attached to bus. If bus also
	implements Contender, memory accesses are delayed accordingly.
*/
func NewCPU(bus Bus) *CPU {
	c := &CPU{bus: bus}
	if ct, ok := bus.(Contender); ok {
		c.contender = ct
	}
	c.Reset()
	return c
}

//
type CPU struct {
	Registers
	// WZ is the internal address latch (MEMPTR)
	WZ uint16

	bus       Bus
	contender Contender

	clock   int
	elapsed int
	delay   int
	extra   int
	ea      uint16

	nmiPending bool
	intPending bool
	intData    byte
	intRaised  int
	afterEI    bool
}

//
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.ClearPending()
}

//
func (c *CPU) ClearPending() {
	c.WZ = 0
	c.nmiPending = false
	c.intPending = false
	c.afterEI = false
}

//
func (c *CPU) Regs() *Registers {
	return &c.Registers
}

// Clock returns the T-state position used for contention and for timing out
// interrupt requests.
func (c *CPU) Clock() int {
	return c.clock
}

//
func (c *CPU) SetClock(tstate int) {
	if c.intPending {
		c.intRaised += tstate - c.clock
	}
	c.clock = tstate
}

// Interrupt raises the maskable interrupt line, with data being the byte the
// interrupting device puts on the bus during acknowledge.
func (c *CPU) Interrupt(data byte) {
	c.intPending = true
	c.intData = data
	c.intRaised = c.clock
}

//
func (c *CPU) NMI() {
	c.nmiPending = true
}

/*
	Step executes whole instructions until at least maxTStates have been
	consumed, and returns the number of T-states used. Pending interrupts are
	serviced at instruction boundaries.
*/
func (c *CPU) Step(maxTStates int) int {
	consumed := 0
	for consumed < maxTStates {
		consumed += c.execute()
	}
	return consumed
}

// execute runs one instruction, interrupt acknowledge, or halted cycle.
func (c *CPU) execute() int {

	c.elapsed, c.delay, c.extra = 0, 0, 0

	if c.intPending && c.clock-c.intRaised > intPulseLength {
		c.intPending = false
	}

	var t int

	switch {
	case c.nmiPending:
		t = c.serviceNMI()
	case c.intPending && c.IFF1 && !c.afterEI:
		t = c.serviceInterrupt()
	case c.Halted:
		c.IncrementR()
		c.afterEI = false
		t = 4
	default:
		c.afterEI = false
		t = c.decodeAndRun()
	}

	t += c.delay
	c.clock += t
	return t
}

//
func (c *CPU) serviceNMI() int {
	c.nmiPending = false
	c.Halted = false
	c.IncrementR()
	c.IFF1 = false
	c.push(c.PC)
	c.PC = 0x0066
	c.WZ = c.PC
	return 11
}

//
func (c *CPU) serviceInterrupt() int {

	c.intPending = false
	c.Halted = false
	c.IncrementR()
	c.IFF1 = false
	c.IFF2 = false

	switch c.IM {

	case 0:
		// the device supplies an opcode, usually an RST
		in := baseTable[useHL][c.intData]
		in.exec(c)
		return in.tstates + c.extra + 2

	case 2:
		vector := uint16(c.I)<<8 | uint16(c.intData&0xFE)
		c.push(c.PC)
		c.PC = c.readWord(vector)
		c.WZ = c.PC
		return 19

	default:
		c.push(c.PC)
		c.PC = 0x0038
		c.WZ = c.PC
		return 13
	}
}

// decodeAndRun fetches an instruction including its prefixes, and executes it.
func (c *CPU) decodeAndRun() int {

	op := c.fetchOpcode()
	mode := useHL
	prefixes := 0

	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			mode = useIX
		} else {
			mode = useIY
		}
		prefixes++
		op = c.fetchOpcode()
	}

	var in *instruction

	switch {
	case op == 0xCB && mode == useHL:
		in = cbTable[c.fetchOpcode()]

	case op == 0xCB:
		c.ea = c.indexBase(mode) + uint16(int8(c.fetchByte()))
		c.WZ = c.ea
		in = indexedCBTable[mode-1][c.fetchByte()]

	case op == 0xED:
		in = edTable[c.fetchOpcode()]

	default:
		in = baseTable[mode][op]
	}

	in.exec(c)
	return in.tstates + c.extra + 4*prefixes
}

// --- memory & I/O -----------------------------------------------------------

//
func (c *CPU) access(addr uint16, cycles int) {
	if c.contender != nil {
		d := c.contender.Contend(addr, c.clock+c.elapsed)
		c.delay += d
		c.elapsed += d
	}
	c.elapsed += cycles
}

//
func (c *CPU) fetchOpcode() byte {
	c.access(c.PC, 4)
	op := c.bus.ReadByte(c.PC)
	c.PC++
	c.IncrementR()
	return op
}

//
func (c *CPU) fetchByte() byte {
	v := c.read(c.PC)
	c.PC++
	return v
}

//
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	return uint16(c.fetchByte())<<8 | uint16(lo)
}

//
func (c *CPU) read(addr uint16) byte {
	c.access(addr, 3)
	return c.bus.ReadByte(addr)
}

//
func (c *CPU) write(addr uint16, v byte) {
	c.access(addr, 3)
	c.bus.WriteByte(addr, v)
}

//
func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.read(addr)
	return uint16(c.read(addr+1))<<8 | uint16(lo)
}

//
func (c *CPU) writeWord(addr, v uint16) {
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
}

//
func (c *CPU) push(v uint16) {
	c.SP--
	c.write(c.SP, byte(v>>8))
	c.SP--
	c.write(c.SP, byte(v))
}

//
func (c *CPU) pop() uint16 {
	lo := c.read(c.SP)
	c.SP++
	hi := c.read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

//
func (c *CPU) in(portLow, portHigh byte) byte {
	c.elapsed += 4
	return c.bus.Input(portLow, portHigh)
}

//
func (c *CPU) out(portLow, portHigh, v byte) {
	c.elapsed += 4
	c.bus.Output(portLow, portHigh, v)
}

// --- register access --------------------------------------------------------

//
func (c *CPU) indexBase(mode indexMode) uint16 {
	switch mode {
	case useIX:
		return c.IX
	case useIY:
		return c.IY
	}
	return c.HL()
}

/*
	memAddr returns the address of the (HL) operand. For index modes, this
	fetches the displacement byte and yields (IX+d) or (IY+d).
*/
func (c *CPU) memAddr(mode indexMode) uint16 {
	if mode == useHL {
		return c.HL()
	}
	c.ea = c.indexBase(mode) + uint16(int8(c.fetchByte()))
	c.WZ = c.ea
	return c.ea
}

// reg8 reads 8 bit register r in encoding order B,C,D,E,H,L,-,A. With an
// index mode, H and L refer to the halves of the index register.
func (c *CPU) reg8(r byte, mode indexMode) byte {
	switch r {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		switch mode {
		case useIX:
			return byte(c.IX >> 8)
		case useIY:
			return byte(c.IY >> 8)
		}
		return c.H
	case 5:
		switch mode {
		case useIX:
			return byte(c.IX)
		case useIY:
			return byte(c.IY)
		}
		return c.L
	case 7:
		return c.A
	}
	return 0xFF
}

//
func (c *CPU) setReg8(r byte, mode indexMode, v byte) {
	switch r {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		switch mode {
		case useIX:
			c.IX = c.IX&0x00FF | uint16(v)<<8
		case useIY:
			c.IY = c.IY&0x00FF | uint16(v)<<8
		default:
			c.H = v
		}
	case 5:
		switch mode {
		case useIX:
			c.IX = c.IX&0xFF00 | uint16(v)
		case useIY:
			c.IY = c.IY&0xFF00 | uint16(v)
		default:
			c.L = v
		}
	case 7:
		c.A = v
	}
}

// pair reads register pair p in encoding order BC,DE,HL,SP; withAF selects AF
// instead of SP, as used by PUSH and POP.
func (c *CPU) pair(p byte, mode indexMode, withAF bool) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.indexBase(mode)
	}
	if withAF {
		return c.AF()
	}
	return c.SP
}

//
func (c *CPU) setPair(p byte, mode indexMode, withAF bool, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		switch mode {
		case useIX:
			c.IX = v
		case useIY:
			c.IY = v
		default:
			c.SetHL(v)
		}
	default:
		if withAF {
			c.SetAF(v)
		} else {
			c.SP = v
		}
	}
}

// condition evaluates condition code cc in encoding order NZ,Z,NC,C,PO,PE,P,M.
func (c *CPU) condition(cc byte) bool {
	var set bool
	switch cc >> 1 {
	case 0:
		set = c.F&FlagZ != 0
	case 1:
		set = c.F&FlagC != 0
	case 2:
		set = c.F&FlagPV != 0
	case 3:
		set = c.F&FlagS != 0
	}
	return set == (cc&1 == 1)
}
