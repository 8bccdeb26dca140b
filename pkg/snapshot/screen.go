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
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

// dimensions of the Spectrum screen in pixels
const (
	ScreenWidth  = 256
	ScreenHeight = 192
)

const (
	intensityNormal = 0xD7
	intensityBright = 0xFF
)

// Screen extracts the screen memory in .scr format from a snapshot, decoding
// only the start of page 5.
func Screen(data []byte) ([]byte, error) {

	rd := bytes.NewReader(data)

	h, err := readHeader(rd)
	if err != nil {
		return nil, err
	}

	if h.Version == 1 {
		scr := data[len(data)-rd.Len():]
		if h.Compressed {
			scr, _ = Decompress(scr, spectrum.ScreenBytes)
		}
		if len(scr) < spectrum.ScreenBytes {
			return nil, fmt.Errorf("truncated screen: %d bytes", len(scr))
		}
		return scr[:spectrum.ScreenBytes], nil
	}

	// page 5 has id 8 in both 48K and 128K files
	for {
		b, err := nextBlock(rd)
		if err == io.EOF {
			return nil, fmt.Errorf("snapshot contains no screen page")
		}
		if err != nil {
			return nil, err
		}
		if b.id == 8 {
			return b.expand(spectrum.ScreenBytes)
		}
	}
}

// RenderScreen turns screen memory in .scr format into an image, showing
// flashing attributes in their normal phase.
func RenderScreen(scr []byte) (*image.RGBA, error) {

	if len(scr) < spectrum.ScreenBytes {
		return nil, fmt.Errorf("invalid screen size: %d", len(scr))
	}

	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))

	for y := 0; y < ScreenHeight; y++ {
		for col := 0; col < ScreenWidth/8; col++ {

			pixels := scr[pixelOffset(y, col)]
			attr := scr[spectrum.PixelBytes+(y/8)*32+col]
			ink, paper := attributeColors(attr)

			for bit := 0; bit < 8; bit++ {
				c := paper
				if pixels&(0x80>>bit) != 0 {
					c = ink
				}
				img.SetRGBA(col*8+bit, y, c)
			}
		}
	}

	return img, nil
}

// WritePNG renders screen memory in .scr format as PNG, scaled by the given
// integer factor.
func WritePNG(w io.Writer, scr []byte, scale int) error {

	if scale < 1 || scale > 8 {
		return fmt.Errorf("invalid scale factor: %d", scale)
	}

	src, err := RenderScreen(scr)
	if err != nil {
		return err
	}

	if scale == 1 {
		return png.Encode(w, src)
	}

	dst := image.NewRGBA(
		image.Rect(0, 0, ScreenWidth*scale, ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(),
		draw.Src, nil)

	return png.Encode(w, dst)
}

// pixelOffset returns the offset of pixel byte col in screen line y.
func pixelOffset(y, col int) int {
	return (y&0xC0)<<5 | (y&0x07)<<8 | (y&0x38)<<2 | col
}

//
func attributeColors(attr byte) (ink, paper color.RGBA) {
	bright := attr&0x40 != 0
	return paletteColor(attr&0x07, bright), paletteColor((attr>>3)&0x07, bright)
}

//
func paletteColor(c byte, bright bool) color.RGBA {

	level := uint8(intensityNormal)
	if bright {
		level = intensityBright
	}

	ret := color.RGBA{A: 0xFF}
	if c&0x01 != 0 {
		ret.B = level
	}
	if c&0x02 != 0 {
		ret.R = level
	}
	if c&0x04 != 0 {
		ret.G = level
	}
	return ret
}
