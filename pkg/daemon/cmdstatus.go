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

package daemon

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

// state flags sent in reply to STATUS
const (
	flagRunning = 1
	flag128K    = 2
	flagLocked  = 4
	flagMouse   = 8
)

/*
	The STATUS command asks for the machine state. The daemon replies with one
	byte of state flags:

		bit 0:	emulation running
		    1:	128K machine
		    2:	128K machine locked into 48K mode
		    3:	mouse attached
*/
func (c *command) status(d *Daemon) error {

	s := d.Status()
	var state byte

	if !s.Paused {
		state |= flagRunning
	}
	if s.Model != spectrum.Model48K.String() {
		state |= flag128K
		if s.Locked48K {
			state |= flagLocked
		}
	}
	if d.config.Mouse {
		state |= flagMouse
	}

	log.WithFields(log.Fields{
		"state": fmt.Sprintf("%02X", state), "pc": s.PC}).Debug("STATUS")

	if c.conduit == nil {
		return fmt.Errorf("no conduit for STATUS reply")
	}
	return c.conduit.send([]byte{state})
}
