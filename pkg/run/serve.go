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
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/control"
	"github.com/xelalexv/zxcore/pkg/daemon"
	"github.com/xelalexv/zxcore/pkg/repo"
	"github.com/xelalexv/zxcore/pkg/spectrum"
	"github.com/xelalexv/zxcore/pkg/util"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		`serve [-a|--address {address}] [-m|--model {48k|128k}] [-r|--rom {file},...]
      [-d|--device {serial device}] [-b|--baud {rate}] [--repo {dir}] [--index {dir}]
      [--core {name}] [--mouse] [--pacing]`,
		"start the emulator daemon",
		`
Use the serve command to start the emulator daemon with its control API. For a
128k machine, give the ROM files in page order, i.e. editor ROM first. When a
snapshot repository is set, it is indexed and can be searched. Snapshots in the
repository can be referenced with repo://{path}.`,
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Model, "model", "m", "", "48k", "machine model, 48k or 128k", false)
	s.AddSetting(&s.ROMs, "rom", "r", "", nil, "ROM image files, in page order", false)
	s.AddSetting(&s.Device, "device", "d", "", "",
		"serial device of the peripheral adapter; no adapter if not set", false)
	s.AddSetting(&s.Baud, "baud", "b", "", 1000000, "baud rate of adapter link", false)
	s.AddSetting(&s.Repo, "repo", "", "", "", "snapshot repository directory", false)
	s.AddSetting(&s.Index, "index", "", "", "",
		"index directory; defaults to .index within repository", false)
	s.AddSetting(&s.Core, "core", "", "", "", "CPU core, 'trace' for trace logging", false)
	s.AddSetting(&s.Mouse, "mouse", "", "", false, "attach Kempston mouse", false)
	s.AddSetting(&s.Pacing, "pacing", "", "", true, "pace frames at 50Hz", false)

	return s
}

//
type Serve struct {
	Runner
	//
	Model  string
	ROMs   []string
	Device string
	Baud   int
	Repo   string
	Index  string
	Core   string
	Mouse  bool
	Pacing bool
}

//
func (s *Serve) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	model, err := spectrum.ParseModel(s.Model)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"version": util.ZXCoreVersion,
		"model":   model,
	}).Info("ZXCore starting")

	d, err := daemon.NewDaemon(daemon.Config{
		Model:  model,
		ROMs:   s.ROMs,
		Core:   s.Core,
		Mouse:  s.Mouse,
		Pacing: s.Pacing,
		Device: s.Device,
		Baud:   s.Baud,
	})
	if err != nil {
		return err
	}

	var index *repo.Index
	if s.Repo != "" {
		if index, err = s.startIndex(); err != nil {
			return err
		}
		defer index.Stop()
	}

	api := control.NewAPIServer(s.Address, d, index, s.Repo)
	apiErr := make(chan error, 1)
	go func() {
		apiErr <- api.Serve()
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			log.Info("shutting down")
		case err := <-apiErr:
			if err != nil {
				log.Errorf("API server failed: %v", err)
			}
		}
		if err := api.Stop(); err != nil {
			log.Errorf("error stopping API server: %v", err)
		}
		d.Stop()
	}()

	return d.Serve()
}

//
func (s *Serve) startIndex() (*repo.Index, error) {

	dir := s.Index
	if dir == "" {
		dir = filepath.Join(s.Repo, ".index")
	}

	index, err := repo.NewIndex(dir, s.Repo)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot index: %v", err)
	}

	go func() {
		if err := index.Start(); err != nil {
			log.Errorf("snapshot index not available: %v", err)
		}
	}()

	return index, nil
}
