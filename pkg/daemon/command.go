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
)

/*
	Commands from the adapter are frames of four bytes: the command code
	followed by three arguments.
*/
const (
	CmdKeys   = 'k'
	CmdMouse  = 'm'
	CmdReset  = 'r'
	CmdNMI    = 'n'
	CmdStatus = 's'
)

//
func newCommand(data []byte, con *conduit) *command {
	return &command{data: data, conduit: con}
}

//
type command struct {
	data    []byte
	conduit *conduit
}

//
func (c *command) cmd() byte {
	return c.data[0]
}

//
func (c *command) arg(ix int) byte {
	if ix < 0 || ix+1 >= len(c.data) {
		return 0
	}
	return c.data[ix+1]
}

//
func (c *command) String() string {
	return fmt.Sprintf("%c [%02X %02X %02X]", c.cmd(), c.arg(0), c.arg(1),
		c.arg(2))
}

//
func (c *command) dispatch(d *Daemon) error {

	switch c.cmd() {

	case CmdKeys:
		return c.keys(d)

	case CmdMouse:
		return c.mouse(d)

	case CmdReset:
		return c.reset(d)

	case CmdNMI:
		return c.nmi(d)

	case CmdStatus:
		return c.status(d)
	}

	log.WithField("command", c.String()).Warn("unknown command")
	return nil
}
