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

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xelalexv/zxcore/pkg/run"
)

//
func main() {

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "zxctl",
		Short: "ZXCore - ZX Spectrum 48K/128K emulator",
		Long: `
ZXCore runs a ZX Spectrum 48K or 128K as a daemon, controlled through an HTTP
API. zxctl starts the daemon and talks to it.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		&run.NewServe().Command,
		&run.NewLoad().Command,
		&run.NewSave().Command,
		&run.NewScreen().Command,
		&run.NewStatus().Command,
		&run.NewReset().Command,
		&run.NewNMI().Command,
		&run.NewConfig().Command,
		&run.NewSearch().Command,
		&run.NewInfo().Command,
		&run.NewDump().Command,
		&run.NewDisasm().Command,
		&run.NewVersion().Command,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
