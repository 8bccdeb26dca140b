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
	"time"

	log "github.com/sirupsen/logrus"
)

// duration of one frame at 50 Hz
const frameDuration = 20 * time.Millisecond

// how long an idle pump sleeps between checks
const idleDelay = 10 * time.Millisecond

// pump runs one frame per tick while pacing, or back to back otherwise.
func (d *Daemon) pump() {

	defer d.routines.Done()

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	log.Debug("frame pump started")

	for {
		paced, paused := d.pumpState()

		if paced || paused {
			wait := ticker.C
			var idle <-chan time.Time
			if paused {
				wait = nil
				idle = time.After(idleDelay)
			}
			select {
			case <-d.stop:
				log.Debug("frame pump stopped")
				return
			case <-wait:
			case <-idle:
				continue
			}
		} else if d.stopped() {
			log.Debug("frame pump stopped")
			return
		}

		d.mutex.Lock()
		if !d.paused {
			d.machine.RunFrame()
		}
		d.mutex.Unlock()
	}
}

//
func (d *Daemon) pumpState() (paced, paused bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.pacing, d.paused
}
