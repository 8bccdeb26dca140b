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

package snapshot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

// Info summarizes a snapshot from its header.
type Info struct {
	Version      int            `json:"version"`
	HardwareMode byte           `json:"hardwareMode"`
	Hardware     string         `json:"hardware"`
	Supported    bool           `json:"supported"`
	Model        spectrum.Model `json:"-"`
	ModelName    string         `json:"model"`
	PC           uint16         `json:"pc"`
	Border       byte           `json:"border"`
	Compressed   bool           `json:"compressed"`
}

// ReadInfo decodes the header of a snapshot.
func ReadInfo(data []byte) (*Info, error) {

	h, err := readHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	ret := &Info{
		Version:      h.Version,
		HardwareMode: h.HardwareMode,
		PC:           h.Registers.PC,
		Border:       h.Border,
		Compressed:   h.Compressed,
		Model:        spectrum.Model48K,
	}

	ret.Hardware, err = hardwareModeName(h.HardwareMode, h.Version)
	ret.Supported = err == nil
	if ret.Hardware == "" {
		ret.Hardware = "unknown"
	}

	if is128K(h.HardwareMode, h.Version) {
		ret.Model = spectrum.Model128K
	}
	ret.ModelName = ret.Model.String()

	return ret, nil
}

//
func (i *Info) String() string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "version:    %d\n", i.Version)
	fmt.Fprintf(&sb, "hardware:   %s (mode %d)", i.Hardware, i.HardwareMode)
	if !i.Supported {
		sb.WriteString(", unsupported")
	}
	fmt.Fprintf(&sb, "\nmodel:      %s\n", i.ModelName)
	fmt.Fprintf(&sb, "PC:         %04X\n", i.PC)
	fmt.Fprintf(&sb, "border:     %d\n", i.Border)
	fmt.Fprintf(&sb, "compressed: %v\n", i.Compressed)

	return sb.String()
}
