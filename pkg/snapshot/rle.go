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

/*
	Memory blocks in .z80 files are run length encoded: a run of at least five
	equal bytes becomes ED ED nn bb, meaning byte bb repeated nn times. Runs of
	0xED are already encoded from a length of two. A byte directly following a
	single 0xED is never taken into a run, so ED 00 00 00 00 00 00 becomes
	ED 00 ED ED 05 00. Version 1 streams end with 00 ED ED 00.
*/

const (
	rleMarker    = 0xED
	rleMinRun    = 5
	rleMinEDRun  = 2
	rleMaxRun    = 255
	rleEndMarker = 0x00
)

/*
	Decompress expands src until maxSize bytes have been produced, the end
	marker is found, or src is exhausted, whichever comes first. It returns the
	expanded data and the number of bytes consumed from src. A maxSize of 0
	means no limit.
*/
func Decompress(src []byte, maxSize int) ([]byte, int) {

	capacity := maxSize
	if capacity == 0 {
		capacity = len(src) * 2
	}
	out := make([]byte, 0, capacity)

	full := func() bool {
		return maxSize > 0 && len(out) >= maxSize
	}

	ix := 0
	for ix < len(src) && !full() {

		if ix+3 < len(src) {
			if src[ix] == rleEndMarker && src[ix+1] == rleMarker &&
				src[ix+2] == rleMarker && src[ix+3] == rleEndMarker {
				return out, ix + 4
			}

			if src[ix] == rleMarker && src[ix+1] == rleMarker {
				count, value := int(src[ix+2]), src[ix+3]
				ix += 4
				for ; count > 0 && !full(); count-- {
					out = append(out, value)
				}
				continue
			}
		}

		out = append(out, src[ix])
		ix++
	}

	return out, ix
}

// Compress run length encodes data.
func Compress(data []byte) []byte {

	out := make([]byte, 0, len(data))
	afterSingleED := false

	for ix := 0; ix < len(data); {

		value := data[ix]
		run := 1
		if !afterSingleED {
			run = runLength(data, ix)
		}

		minRun := rleMinRun
		if value == rleMarker {
			minRun = rleMinEDRun
		}

		if run >= minRun {
			out = append(out, rleMarker, rleMarker, byte(run), value)
			ix += run
			afterSingleED = false
			continue
		}

		out = append(out, value)
		ix++
		afterSingleED = value == rleMarker
	}

	return out
}

// runLength counts equal bytes starting at data[ix], up to the maximum run.
func runLength(data []byte, ix int) int {
	run := 1
	for ix+run < len(data) && run < rleMaxRun && data[ix+run] == data[ix] {
		run++
	}
	return run
}
