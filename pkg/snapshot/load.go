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
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

const (
	// MaxSize is the largest snapshot accepted for loading
	MaxSize = 256000

	rawBlock   = 0xFFFF
	main48Size = 3 * spectrum.PageSize
)

// page ids of 48K files and the RAM pages they hold
var remap48K = map[byte]int{4: 2, 5: 0, 8: 5}

// the 48K stream of version 1 files holds pages 5, 2, and 0, in that order
var stream48K = []int{5, 2, 0}

/*
	Image is a fully decoded snapshot, staged for applying to a machine. It
	only holds the RAM pages present in the file.
*/
type Image struct {
	Header
	Model    spectrum.Model
	Hardware string
	Pages    map[int][]byte
}

// Banks returns the RAM pages present in the image, in ascending order.
func (img *Image) Banks() []int {
	var ret []int
	for bank := range img.Pages {
		ret = append(ret, bank)
	}
	sort.Ints(ret)
	return ret
}

// Load decodes the snapshot read from r and applies it to m. The machine
// remains untouched if decoding fails.
func Load(r io.Reader, m *spectrum.Machine) error {

	data, err := io.ReadAll(io.LimitReader(r, MaxSize))
	if err != nil {
		return err
	}

	img, err := Parse(data)
	if err != nil {
		return err
	}

	return img.Apply(m)
}

// Parse decodes a complete snapshot.
func Parse(data []byte) (*Image, error) {

	rd := bytes.NewReader(data)

	h, err := readHeader(rd)
	if err != nil {
		return nil, err
	}

	img := &Image{
		Header: *h,
		Model:  spectrum.Model48K,
		Pages:  make(map[int][]byte),
	}

	if img.Hardware, err = hardwareModeName(h.HardwareMode, h.Version); err != nil {
		log.WithField("version", h.Version).Warnf(
			"%v, loading as %s", err, img.modelFor())
	}
	img.Model = img.modelFor()

	log.WithFields(log.Fields{
		"version":    h.Version,
		"hardware":   img.Hardware,
		"model":      img.Model,
		"pc":         fmt.Sprintf("%04X", h.Registers.PC),
		"compressed": h.Compressed,
	}).Debug("snapshot header")

	if h.Version == 1 {
		err = img.parseStream(data[len(data)-rd.Len():])
	} else {
		err = img.parseBlocks(rd)
	}

	if err != nil {
		return nil, err
	}
	return img, nil
}

//
func (img *Image) modelFor() spectrum.Model {
	if is128K(img.HardwareMode, img.Version) {
		return spectrum.Model128K
	}
	return spectrum.Model48K
}

//
func (img *Image) parseStream(data []byte) error {

	main := data
	if img.Compressed {
		main, _ = Decompress(data, main48Size)
	}

	if len(main) < main48Size {
		return fmt.Errorf("truncated memory image: %d bytes", len(main))
	}

	for ix, bank := range stream48K {
		page := make([]byte, spectrum.PageSize)
		copy(page, main[ix*spectrum.PageSize:])
		img.Pages[bank] = page
	}

	return nil
}

//
func (img *Image) parseBlocks(rd *bytes.Reader) error {

	for {
		b, err := nextBlock(rd)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		bank, ok := img.bankFor(b.id)
		if !ok {
			log.WithField("page", b.id).Warn("skipping unknown page")
			continue
		}

		page, err := b.expand(spectrum.PageSize)
		if err != nil {
			return fmt.Errorf("page %d: %v", b.id, err)
		}

		log.WithFields(log.Fields{
			"page": b.id,
			"bank": bank,
			"raw":  b.raw,
			"size": len(b.data)}).Debug("memory block")

		img.Pages[bank] = page
	}
}

// bankFor maps a page id of the file to a RAM page.
func (img *Image) bankFor(id byte) (int, bool) {
	if img.Model == spectrum.Model128K {
		if id >= 3 && id <= 10 {
			return int(id) - 3, true
		}
		return 0, false
	}
	bank, ok := remap48K[id]
	return bank, ok
}

/*
	Apply puts the image into machine m. A 128K image requires a 128K machine.
	A 48K image on a 128K machine locks the machine into 48K mode. RAM pages
	not present in the image are cleared.
*/
func (img *Image) Apply(m *spectrum.Machine) error {

	if img.Model == spectrum.Model128K && m.Model() != spectrum.Model128K {
		return fmt.Errorf("128k snapshot cannot be loaded into %s machine",
			m.Model())
	}

	mem := m.Memory()
	for bank := range img.Pages {
		if !mem.HasPage(bank) {
			return fmt.Errorf("RAM page %d not present in %s machine",
				bank, m.Model())
		}
	}

	mem.Clear()
	for bank, data := range img.Pages {
		if err := mem.WritePage(bank, data); err != nil {
			return err
		}
	}

	switch {
	case img.Model == spectrum.Model128K:
		mem.ForceState(spectrum.MemorySelect(img.PagingState))
	case m.Model() == spectrum.Model128K:
		mem.ForceState(spectrum.RomSelectMask | spectrum.PagingLockMask)
	default:
		mem.ForceState(0)
	}

	m.CPU().ClearPending()
	regs := m.Registers()
	*regs = img.Registers
	regs.Halted = false

	ports := m.Ports()
	ports.SetBorder(img.Border)

	if img.Model == spectrum.Model128K {
		ay := ports.AY()
		ay.Registers = img.AYRegisters
		ay.Selected = img.AYSelect
	}

	log.WithFields(log.Fields{
		"model":  img.Model,
		"pages":  img.Banks(),
		"paging": fmt.Sprintf("%02X", byte(mem.State())),
	}).Debug("snapshot applied")

	return nil
}

//
type block struct {
	id   byte
	raw  bool
	data []byte
}

//
func nextBlock(rd *bytes.Reader) (*block, error) {

	if rd.Len() == 0 {
		return nil, io.EOF
	}

	length, err := readUInt16(rd)
	if err != nil {
		return nil, fmt.Errorf("truncated memory block header")
	}
	// a zero length record terminates the block sequence
	if length == 0 {
		return nil, io.EOF
	}
	id, err := readByte(rd)
	if err != nil {
		return nil, fmt.Errorf("truncated memory block header")
	}

	b := &block{id: id}
	if length == rawBlock {
		b.raw = true
		length = spectrum.PageSize
	}

	if length > rd.Len() {
		return nil, fmt.Errorf("truncated memory block for page %d", id)
	}

	b.data = make([]byte, length)
	if _, err := io.ReadFull(rd, b.data); err != nil {
		return nil, err
	}

	return b, nil
}

// expand returns the first size bytes of the block's page.
func (b *block) expand(size int) ([]byte, error) {

	if b.raw {
		return b.data[:size], nil
	}

	ret, _ := Decompress(b.data, size)
	if len(ret) < size {
		return nil, fmt.Errorf("decompressed to %d bytes, want %d",
			len(ret), size)
	}
	return ret, nil
}
