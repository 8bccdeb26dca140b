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
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maximum number of instructions per disassembly request
const maxDisasm = 1000

//
func (a *api) memory(w http.ResponseWriter, req *http.Request) {

	bank, err := getIntArg(req, "bank", 0)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	page, err := a.daemon.ReadPage(bank)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if isFlagSet(req, "raw") {
		sendStreamReply(bytes.NewReader(page),
			"application/octet-stream", http.StatusOK, w)
		return
	}

	sendPipeReply(func(out io.Writer) error {
		d := hex.Dumper(out)
		if _, err := d.Write(page); err != nil {
			return err
		}
		return d.Close()
	}, "text/plain; charset=UTF-8", http.StatusOK, w)
}

//
func (a *api) disasm(w http.ResponseWriter, req *http.Request) {

	addr, err := getIntArg(req, "addr", -1)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if addr > 0xFFFF {
		handleError(fmt.Errorf("invalid address: %d", addr),
			http.StatusUnprocessableEntity, w)
		return
	}

	count, err := getIntArg(req, "count", 16)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if count < 1 || count > maxDisasm {
		handleError(fmt.Errorf("invalid instruction count: %d", count),
			http.StatusUnprocessableEntity, w)
		return
	}

	lines := a.daemon.Disassemble(addr, count)

	if wantsJSON(req) {
		sendJSONReply(lines, http.StatusOK, w)
		return
	}

	sendReply([]byte(strings.Join(lines, "\n")+"\n"), http.StatusOK, w)
}
