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
	log "github.com/sirupsen/logrus"
)

/*
	The KEYS command sets the state of one keyboard half row, as read from the
	adapter's keyboard matrix.

		arg 0:	half row, 0 (CAPS SHIFT to V) through 7 (SPACE to B)
		    1:	key bits, active low, bits 0 to 4
		    2:	unused
*/
func (c *command) keys(d *Daemon) error {

	if err := d.SetKeyboardRow(int(c.arg(0)), c.arg(1)|0xE0); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"row": c.arg(0), "keys": c.arg(1)}).Trace("KEYS")
	return nil
}
