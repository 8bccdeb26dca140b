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

// The RESET command resets the machine, arguments are ignored.
func (c *command) reset(d *Daemon) error {
	log.Info("RESET")
	d.Reset()
	return nil
}

// The NMI command triggers a non-maskable interrupt, arguments are ignored.
func (c *command) nmi(d *Daemon) error {
	log.Info("NMI")
	d.NMI()
	return nil
}
