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
	"bytes"
	"fmt"
	"net/http"

	"github.com/xelalexv/zxcore/pkg/snapshot"
)

//
func (a *api) screen(w http.ResponseWriter, req *http.Request) {

	scale, err := getIntArg(req, "scale", 1)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	scr := a.daemon.Screen()

	switch format := getArg(req, "format"); format {

	case "", "png":
		var buf bytes.Buffer
		if handleError(snapshot.WritePNG(&buf, scr, scale),
			http.StatusUnprocessableEntity, w) {
			return
		}
		sendStreamReply(&buf, "image/png", http.StatusOK, w)

	case snapshot.TypeSCR:
		sendStreamReply(bytes.NewReader(scr), "application/octet-stream",
			http.StatusOK, w)

	default:
		handleError(fmt.Errorf("unsupported screen format: %s", format),
			http.StatusUnprocessableEntity, w)
	}
}
