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

package run

import (
	"fmt"
	"io"
	"os"
)

//
func NewConfig() *Config {

	c := &Config{}
	c.Runner = *NewRunner(
		`config [-a|--address {address}] -i|--item {pacing|paused} [-s|--set {on|off}]`,
		"get or set daemon configuration",
		`
Use the config command to show or change a setting of the running daemon.
Without the set option, the current value is shown. Available items:

  pacing   run frames at 50Hz; when off, the machine runs as fast as possible
  paused   stop and resume the machine`,
		"", runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.Item, "item", "i", "", nil, "configuration item", true)
	c.AddSetting(&c.Set, "set", "s", "", "", "new value, on or off", false)

	return c
}

//
type Config struct {
	Runner
	//
	Item string
	Set  string
}

//
func (c *Config) Run() error {

	if err := c.ParseSettings(); err != nil {
		return err
	}

	var resp io.ReadCloser
	var err error

	if c.Set == "" {
		resp, err = c.apiCall("GET", fmt.Sprintf("/config?item=%s", c.Item),
			false, nil)
	} else {
		resp, err = c.apiCall("PUT", fmt.Sprintf("/config?item=%s&value=%s",
			c.Item, c.Set), false, nil)
	}

	if err != nil {
		return err
	}
	defer resp.Close()

	_, err = io.Copy(os.Stdout, resp)
	return err
}
