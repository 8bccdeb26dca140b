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
	log "github.com/sirupsen/logrus"
)

/*
	NewTracer decorates inner with per instruction logging at trace level. The
	bus is used for disassembling the instruction about to be executed. When
	trace logging is not enabled, the tracer passes budgets straight through.
*/
func NewTracer(inner Core, bus Bus) Core {
	return &tracer{Core: inner, bus: bus}
}

//
type tracer struct {
	Core
	bus Bus
}

//
func (t *tracer) Step(maxTStates int) int {

	if !log.IsLevelEnabled(log.TraceLevel) {
		return t.Core.Step(maxTStates)
	}

	consumed := 0
	for consumed < maxTStates {
		r := t.Regs()
		text, _ := Disassemble(t.bus.ReadByte, r.PC)
		log.WithFields(log.Fields{
			"pc": r.PC,
			"af": r.AF(),
			"bc": r.BC(),
			"de": r.DE(),
			"hl": r.HL(),
			"sp": r.SP,
		}).Trace(text)
		consumed += t.Core.Step(1)
	}
	return consumed
}
