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
	"strings"

	"github.com/xelalexv/zxcore/pkg/util"
	"github.com/xelalexv/zxcore/pkg/z80"
)

//
type Version struct {
	Daemon  string   `json:"daemon"`
	Model   string   `json:"model"`
	Cores   []string `json:"cores"`
	Adapter bool     `json:"adapter"`
}

//
func (v *Version) String() string {
	adapter := "not connected"
	if v.Adapter {
		adapter = "connected"
	}
	return fmt.Sprintf(
		"daemon:     %s\nmachine:    %s\nCPU cores:  %s\nadapter:    %s\n",
		v.Daemon, v.Model, strings.Join(v.Cores, ", "), adapter)
}

//
func (a *api) version(w http.ResponseWriter, req *http.Request) {

	ver := &Version{
		Daemon:  util.ZXCoreVersion,
		Model:   a.daemon.Status().Model,
		Cores:   z80.CoreKinds(),
		Adapter: a.daemon.IsAdapterConnected(),
	}

	if wantsJSON(req) {
		sendJSONReply(ver, http.StatusOK, w)
	} else {
		sendReply([]byte(ver.String()), http.StatusOK, w)
	}
}
