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

package control

import (
	"fmt"
	"net/http"
)

//
func (a *api) status(w http.ResponseWriter, req *http.Request) {
	s := a.daemon.Status()
	if wantsJSON(req) {
		sendJSONReply(s, http.StatusOK, w)
	} else {
		sendReply([]byte(s.String()), http.StatusOK, w)
	}
}

//
func (a *api) reset(w http.ResponseWriter, req *http.Request) {
	a.daemon.Reset()
	sendReply([]byte("machine reset\n"), http.StatusOK, w)
}

//
func (a *api) nmi(w http.ResponseWriter, req *http.Request) {
	a.daemon.NMI()
	sendReply([]byte("NMI triggered\n"), http.StatusOK, w)
}

//
func (a *api) keys(w http.ResponseWriter, req *http.Request) {

	row, err := getIntArg(req, "row", -1)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	value, err := getIntArg(req, "value", 0xFF)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if value < 0 || value > 0xFF {
		handleError(fmt.Errorf("invalid key row value: %d", value),
			http.StatusUnprocessableEntity, w)
		return
	}

	if handleError(a.daemon.SetKeyboardRow(row, byte(value)),
		http.StatusUnprocessableEntity, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("keyboard row %d set to %02X\n", row, value)),
		http.StatusOK, w)
}
