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
	"strings"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

// Status is a summary of the machine state.
type Status struct {
	Model     string `json:"model"`
	PC        uint16 `json:"pc"`
	Frames    int    `json:"frames"`
	Paging    byte   `json:"paging"`
	Locked48K bool   `json:"locked48k"`
	Border    byte   `json:"border"`
	Paused    bool   `json:"paused"`
	Pacing    bool   `json:"pacing"`
	Adapter   bool   `json:"adapter"`
}

//
func (d *Daemon) Status() *Status {

	adapter := d.IsAdapterConnected()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	m := d.machine
	return &Status{
		Model:     m.Model().String(),
		PC:        m.Registers().PC,
		Frames:    m.Frames(),
		Paging:    byte(m.Memory().State()),
		Locked48K: m.Is48KLocked(),
		Border:    m.Ports().Border(),
		Paused:    d.paused,
		Pacing:    d.pacing,
		Adapter:   adapter,
	}
}

//
func (s *Status) String() string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "model:   %s\n", s.Model)
	fmt.Fprintf(&sb, "PC:      %04X\n", s.PC)
	fmt.Fprintf(&sb, "frames:  %d\n", s.Frames)
	fmt.Fprintf(&sb, "paging:  %02X", s.Paging)
	if s.Locked48K && s.Model != spectrum.Model48K.String() {
		sb.WriteString(" (locked in 48k mode)")
	}
	fmt.Fprintf(&sb, "\nborder:  %d\n", s.Border)
	fmt.Fprintf(&sb, "paused:  %v\n", s.Paused)
	fmt.Fprintf(&sb, "pacing:  %v\n", s.Pacing)
	fmt.Fprintf(&sb, "adapter: %v\n", s.Adapter)

	return sb.String()
}
