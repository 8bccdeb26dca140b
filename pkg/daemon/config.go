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

	log "github.com/sirupsen/logrus"
)

// run time settings
const (
	ConfigItemPacing = "pacing"
	ConfigItemPaused = "paused"
)

//
func (d *Daemon) GetConfig(item string) (interface{}, error) {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	switch item {
	case ConfigItemPacing:
		return d.pacing, nil
	case ConfigItemPaused:
		return d.paused, nil
	}

	return nil, fmt.Errorf("unknown config item: %s", item)
}

//
func (d *Daemon) SetConfig(item string, on bool) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	switch item {
	case ConfigItemPacing:
		d.pacing = on
	case ConfigItemPaused:
		d.paused = on
	default:
		return fmt.Errorf("unknown config item: %s", item)
	}

	log.WithFields(log.Fields{"item": item, "value": on}).Info("config changed")
	return nil
}
