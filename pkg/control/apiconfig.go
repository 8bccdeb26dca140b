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
func (a *api) getConfig(w http.ResponseWriter, req *http.Request) {

	item := getArg(req, "item")
	conf, err := a.daemon.GetConfig(item)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(map[string]interface{}{item: conf}, http.StatusOK, w)
		return
	}

	sendReply([]byte(fmt.Sprintf("%v\n", conf)), http.StatusOK, w)
}

//
func (a *api) setConfig(w http.ResponseWriter, req *http.Request) {

	item := getArg(req, "item")
	if getArg(req, "value") == "" {
		handleError(fmt.Errorf("no value for %s", item),
			http.StatusUnprocessableEntity, w)
		return
	}

	on := isFlagSet(req, "value")
	if handleError(a.daemon.SetConfig(item, on),
		http.StatusUnprocessableEntity, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf("%s set to %v\n", item, on)), http.StatusOK, w)
}
