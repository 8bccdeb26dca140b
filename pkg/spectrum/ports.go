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
)

// number of keyboard half rows, selected through port 0xFE high byte bits
const KeyboardRows = 8

// Mouse is the state of a Kempston mouse.
type Mouse struct {
	Buttons byte
	X       byte
	Y       byte
}

/*
	Ports dispatches I/O by low and high port byte. It holds the keyboard
	matrix, border and beeper latch, the AY register file, the optional
	Kempston mouse, and drives paging of the memory map.
*/
type Ports struct {
	mem      *Memory
	keyboard [KeyboardRows]byte
	ay       AYState
	mouse    *Mouse
	border   byte
	beeper   bool
	unmapped byte
}

//
func NewPorts(mem *Memory) *Ports {
	p := &Ports{mem: mem}
	p.Reset()
	return p
}

//
func (p *Ports) Reset() {
	for ix := range p.keyboard {
		p.keyboard[ix] = 0xFF
	}
	p.ay.Reset()
	p.border = 0
	p.beeper = false
	p.unmapped = 0
}

//
func (p *Ports) Input(portLow, portHigh byte) byte {

	if portLow == 0xFE {
		if v, ok := p.readKeyboard(portHigh); ok {
			return v
		}
	}

	if portLow == 0xFD && portHigh == 0xFF {
		return p.ay.Read()
	}

	if portLow == 0xDF && p.mouse != nil {
		switch portHigh {
		case 0xFA:
			return p.mouse.Buttons
		case 0xFB:
			return p.mouse.X
		case 0xFF:
			return p.mouse.Y
		}
	}

	return (p.unmapped | 0xE0) &^ 0x40
}

// readKeyboard combines all half rows whose select bit in portHigh is low.
// A high byte selecting no row at all is not a keyboard read.
func (p *Ports) readKeyboard(portHigh byte) (byte, bool) {
	ret := byte(0xFF)
	selected := false
	for row := 0; row < KeyboardRows; row++ {
		if portHigh&(1<<row) == 0 {
			ret &= p.keyboard[row]
			selected = true
		}
	}
	return ret, selected
}

//
func (p *Ports) Output(portLow, portHigh, data byte) {

	switch portLow {

	case 0xFE:
		if b := data & 0x07; b != p.border {
			p.border = b
			log.WithField("border", b).Trace("border changed")
		}
		p.beeper = data&0x10 != 0

	case 0xF5:
		if portHigh == 0xC0 {
			p.ay.Select(data)
		}

	case 0xFD:
		switch portHigh {
		case 0xFF:
			p.ay.Select(data)
		case 0xBF:
			p.ay.Write(data)
		case 0x7F:
			p.mem.SetState(MemorySelect(data))
		}

	default:
		p.unmapped = data
	}
}

//
func (p *Ports) Border() byte {
	return p.border
}

//
func (p *Ports) SetBorder(b byte) {
	p.border = b & 0x07
}

//
func (p *Ports) Beeper() bool {
	return p.beeper
}

//
func (p *Ports) AY() *AYState {
	return &p.ay
}

// AttachMouse connects a Kempston mouse; nil disconnects it.
func (p *Ports) AttachMouse(m *Mouse) {
	p.mouse = m
}

//
func (p *Ports) Mouse() *Mouse {
	return p.mouse
}

// SetKeyboardRow sets the raw, active low state of half row 0-7.
func (p *Ports) SetKeyboardRow(row int, v byte) error {
	if row < 0 || row >= KeyboardRows {
		return fmt.Errorf("invalid keyboard row: %d", row)
	}
	p.keyboard[row] = v
	return nil
}

//
func (p *Ports) KeyboardRow(row int) byte {
	if row < 0 || row >= KeyboardRows {
		return 0xFF
	}
	return p.keyboard[row]
}

// KeyDown presses key bit 0-4 in half row 0-7.
func (p *Ports) KeyDown(row, bit int) error {
	if err := validateKey(row, bit); err != nil {
		return err
	}
	p.keyboard[row] &^= 1 << bit
	return nil
}

//
func (p *Ports) KeyUp(row, bit int) error {
	if err := validateKey(row, bit); err != nil {
		return err
	}
	p.keyboard[row] |= 1 << bit
	return nil
}

//
func validateKey(row, bit int) error {
	if row < 0 || row >= KeyboardRows || bit < 0 || bit > 4 {
		return fmt.Errorf("invalid key: row %d, bit %d", row, bit)
	}
	return nil
}
