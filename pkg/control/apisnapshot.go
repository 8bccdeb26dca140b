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
	"io"
	"net/http"

	"github.com/xelalexv/zxcore/pkg/repo"
	"github.com/xelalexv/zxcore/pkg/snapshot"
)

//
func (a *api) load(w http.ResponseWriter, req *http.Request) {

	var in io.ReadCloser
	compressor := getArg(req, "compressor")

	if ref, err := getRef(req); ref != "" {
		if err == nil {
			in, err = repo.Resolve(ref, a.repository)
		}
		if err != nil {
			handleError(err, http.StatusNotAcceptable, w)
			return
		}
		if compressor == "" {
			_, _, compressor = snapshot.SplitNameTypeCompressor(ref)
		}
	} else {
		in = http.MaxBytesReader(w, req.Body, 8*snapshot.MaxSize)
	}

	rd, err := snapshot.NewReader(in, compressor)
	if err != nil {
		in.Close()
		handleError(err, http.StatusUnprocessableEntity, w)
		return
	}
	defer rd.Close()

	if typ := rd.Type(); typ != "" && typ != snapshot.TypeZ80 {
		handleError(fmt.Errorf("unsupported snapshot type: %s", typ),
			http.StatusUnprocessableEntity, w)
		return
	}

	if err := a.daemon.Load(rd); err != nil {
		handleError(fmt.Errorf("snapshot corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}

	sendReply([]byte("snapshot loaded\n"), http.StatusOK, w)
}

//
func (a *api) save(w http.ResponseWriter, req *http.Request) {

	w.Header().Set("Content-Disposition", "attachment; filename=\"snapshot.z80\"")
	sendPipeReply(a.daemon.Save, "application/octet-stream", http.StatusOK, w)
}
