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
	The MOUSE command updates the Kempston mouse.

		arg 0:	buttons, active low
		    1:	X position
		    2:	Y position
*/
func (c *command) mouse(d *Daemon) error {

	if err := d.SetMouse(c.arg(0), c.arg(1), c.arg(2)); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"buttons": c.arg(0), "x": c.arg(1), "y": c.arg(2)}).Trace("MOUSE")
	return nil
}
