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
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

const (
	hwMode48K  = 0
	hwMode128K = 4
)

// Save writes the state of machine m as a version 3 snapshot to w.
func Save(m *spectrum.Machine, w io.Writer) error {

	img, err := Capture(m)
	if err != nil {
		return err
	}

	data, err := img.Encode()
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

/*
	Capture stages the state of machine m into an image. A 48K machine, or a
	128K machine locked into 48K mode, produces a 48K image holding the pages
	visible at 0x4000, 0x8000, and 0xC000 as pages 5, 2, and 0.
*/
func Capture(m *spectrum.Machine) (*Image, error) {

	img := &Image{
		Header: Header{
			Version:   3,
			Registers: *m.Registers(),
			Border:    m.Ports().Border(),
		},
		Pages: make(map[int][]byte),
	}

	state := m.Memory().State()

	// image page -> machine page
	banks := make(map[int]int)

	if m.Is48KLocked() {
		img.Model = spectrum.Model48K
		img.HardwareMode = hwMode48K
		banks[5], banks[2], banks[0] = 5, 2, state.RamBank()

	} else {
		img.Model = spectrum.Model128K
		img.HardwareMode = hwMode128K
		img.PagingState = byte(state)
		ay := m.Ports().AY()
		img.AYSelect = ay.Selected
		img.AYRegisters = ay.Registers
		for _, bank := range m.Memory().Pages() {
			banks[bank] = bank
		}
	}

	img.Hardware, _ = hardwareModeName(img.HardwareMode, img.Version)

	for bank, from := range banks {
		page, err := m.Memory().ReadPage(from)
		if err != nil {
			return nil, err
		}
		img.Pages[bank] = page
	}

	return img, nil
}

// Encode serializes the image as a version 3 snapshot.
func (img *Image) Encode() ([]byte, error) {

	var b bytes.Buffer
	img.Header.write(&b)

	for _, p := range img.pageOrder() {

		page, ok := img.Pages[p.bank]
		if !ok {
			continue
		}
		if len(page) != spectrum.PageSize {
			return nil, fmt.Errorf("invalid size of page %d: %d",
				p.bank, len(page))
		}

		data := Compress(page)
		length := len(data)
		if length >= spectrum.PageSize {
			data = page
			length = rawBlock
		}

		log.WithFields(log.Fields{
			"page":   p.id,
			"bank":   p.bank,
			"length": length}).Debug("writing memory block")

		writeUInt16(&b, length)
		b.WriteByte(p.id)
		b.Write(data)
	}

	return b.Bytes(), nil
}

//
type pageID struct {
	bank int
	id   byte
}

// pageOrder lists the blocks to write, with their ids in the file.
func (img *Image) pageOrder() []pageID {

	if img.Model == spectrum.Model128K {
		var ret []pageID
		for bank := 0; bank < 8; bank++ {
			ret = append(ret, pageID{bank: bank, id: byte(bank + 3)})
		}
		return ret
	}

	return []pageID{{bank: 5, id: 8}, {bank: 2, id: 4}, {bank: 0, id: 5}}
}
