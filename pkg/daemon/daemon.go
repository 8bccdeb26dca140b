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
	"io"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/snapshot"
	"github.com/xelalexv/zxcore/pkg/spectrum"
	"github.com/xelalexv/zxcore/pkg/z80"
)

// time to wait before trying to reconnect to the adapter
const reconnectDelay = 5 * time.Second

//
type Config struct {
	Model  spectrum.Model
	ROMs   []string
	Core   string
	Mouse  bool
	Pacing bool
	Device string
	Baud   int
}

/*
	Daemon owns one machine and runs it. All access to the machine goes through
	the daemon, which serializes the frame pump, adapter commands, and API
	requests.
*/
type Daemon struct {
	config  Config
	machine *spectrum.Machine
	mutex   sync.Mutex
	paused  bool
	pacing  bool
	//
	conduit  *conduit
	conMutex sync.Mutex
	stop     chan bool
	stopOnce sync.Once
	routines sync.WaitGroup
}

//
func NewDaemon(cfg Config) (*Daemon, error) {

	m, err := spectrum.NewMachine(cfg.Model,
		spectrum.Options{Core: cfg.Core, Mouse: cfg.Mouse})
	if err != nil {
		return nil, err
	}

	if len(cfg.ROMs) > 2 {
		return nil, fmt.Errorf("too many ROM files: %d", len(cfg.ROMs))
	}

	for ix, file := range cfg.ROMs {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read ROM file: %v", err)
		}
		if err := m.LoadROM(ix, data); err != nil {
			return nil, fmt.Errorf("cannot load ROM file %s: %v", file, err)
		}
	}

	if len(cfg.ROMs) == 0 {
		log.Warn("no ROM loaded, machine will only run snapshots")
	}

	return &Daemon{
		config:  cfg,
		machine: m,
		pacing:  cfg.Pacing,
		stop:    make(chan bool),
	}, nil
}

/*
	Serve runs the frame pump, and if an adapter device is configured, the
	adapter listener. It blocks until Stop is called.
*/
func (d *Daemon) Serve() error {

	log.WithFields(log.Fields{
		"model":  d.config.Model,
		"pacing": d.pacing,
		"device": d.config.Device,
	}).Info("daemon starting")

	d.routines.Add(1)
	go d.pump()

	if d.config.Device != "" {
		d.routines.Add(1)
		go d.listen()
	}

	<-d.stop
	d.routines.Wait()

	log.Info("daemon stopped")
	return nil
}

// Stop signals the daemon to stop. It can be called more than once.
func (d *Daemon) Stop() {
	d.stopOnce.Do(func() {
		log.Info("daemon stopping")
		close(d.stop)
		d.conMutex.Lock()
		if d.conduit != nil {
			d.conduit.close()
		}
		d.conMutex.Unlock()
	})
}

//
func (d *Daemon) stopped() bool {
	select {
	case <-d.stop:
		return true
	default:
		return false
	}
}

//
func (d *Daemon) listen() {

	defer d.routines.Done()

	for !d.stopped() {

		con, err := openConduit(d.config.Device, d.config.Baud)
		if err != nil {
			log.Errorf("cannot connect to adapter: %v", err)
			select {
			case <-d.stop:
				return
			case <-time.After(reconnectDelay):
				continue
			}
		}

		d.setConduit(con)
		err = d.serveConduit(con)
		d.setConduit(nil)
		con.close()

		if err != nil && !d.stopped() {
			log.Errorf("adapter connection lost: %v", err)
		}
	}
}

//
func (d *Daemon) setConduit(con *conduit) {
	d.conMutex.Lock()
	defer d.conMutex.Unlock()
	if con != nil && d.stopped() {
		con.close()
	}
	d.conduit = con
}

// serveConduit receives and runs adapter commands until the conduit fails.
func (d *Daemon) serveConduit(con *conduit) error {

	log.Info("adapter connected")

	for {
		cmd, err := con.receiveCommand()
		if err != nil {
			return err
		}
		if err := cmd.dispatch(d); err != nil {
			log.Errorf("error processing command %s: %v", cmd, err)
		}
	}
}

// IsAdapterConnected tells whether an adapter is connected via serial link.
func (d *Daemon) IsAdapterConnected() bool {
	d.conMutex.Lock()
	defer d.conMutex.Unlock()
	return d.conduit != nil
}

// Load reads a snapshot from r and puts it into the machine. The machine is
// left untouched if the snapshot cannot be decoded.
func (d *Daemon) Load(r io.Reader) error {

	data, err := io.ReadAll(io.LimitReader(r, snapshot.MaxSize))
	if err != nil {
		return err
	}

	img, err := snapshot.Parse(data)
	if err != nil {
		return err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := img.Apply(d.machine); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"model":    img.Model,
		"hardware": img.Hardware,
		"pc":       fmt.Sprintf("%04X", img.Registers.PC),
	}).Info("snapshot loaded")

	return nil
}

// Save writes the machine state as snapshot to w.
func (d *Daemon) Save(w io.Writer) error {

	d.mutex.Lock()
	img, err := snapshot.Capture(d.machine)
	d.mutex.Unlock()

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

// Screen returns the displayed screen in .scr format.
func (d *Daemon) Screen() []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.machine.Memory().Screen().Bytes()
}

// ReadPage returns a copy of a RAM page.
func (d *Daemon) ReadPage(bank int) ([]byte, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.machine.Memory().ReadPage(bank)
}

// Disassemble disassembles count instructions starting at addr, or at the
// current PC if addr is negative.
func (d *Daemon) Disassemble(addr, count int) []string {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if addr < 0 {
		addr = int(d.machine.Registers().PC)
	}
	return z80.DisassembleRange(d.machine.ReadByte, uint16(addr), count)
}

//
func (d *Daemon) Reset() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.machine.Reset()
	log.Info("machine reset")
}

//
func (d *Daemon) NMI() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.machine.NMI()
	log.Debug("NMI triggered")
}

// SetKeyboardRow sets the state of a keyboard half row, active low.
func (d *Daemon) SetKeyboardRow(row int, value byte) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.machine.Ports().SetKeyboardRow(row, value)
}

// SetMouse updates the state of an attached Kempston mouse.
func (d *Daemon) SetMouse(buttons, x, y byte) error {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	mouse := d.machine.Ports().Mouse()
	if mouse == nil {
		return fmt.Errorf("no mouse attached")
	}
	mouse.Buttons, mouse.X, mouse.Y = buttons, x, y
	return nil
}
