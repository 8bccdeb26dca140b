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
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/xelalexv/zxcore/pkg/spectrum"
)

var errDrained = fmt.Errorf("drained")

// testPort feeds prepared commands and records replies.
type testPort struct {
	in  *bytes.Reader
	out bytes.Buffer
}

//
func (p *testPort) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, errDrained
	}
	return p.in.Read(b)
}

//
func (p *testPort) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

//
func (p *testPort) Close() error {
	return nil
}

//
func newTestDaemon(t *testing.T, cfg Config) *Daemon {
	d, err := NewDaemon(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

//
func TestAdapterCommands(t *testing.T) {

	d := newTestDaemon(t, Config{Model: spectrum.Model128K, Mouse: true})
	d.machine.Registers().PC = 0x1234

	port := &testPort{in: bytes.NewReader([]byte{
		CmdKeys, 3, 0x1E, 0,
		CmdMouse, 0xFE, 10, 20,
		'x', 0, 0, 0,
		CmdStatus, 0, 0, 0,
		CmdReset, 0, 0, 0,
	})}

	if err := d.serveConduit(newConduit(port)); err != errDrained {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := d.machine.Ports().KeyboardRow(3); got != 0xFE {
		t.Fatalf("keyboard row 3: 0x%02X", got)
	}

	mouse := d.machine.Ports().Mouse()
	if mouse.Buttons != 0xFE || mouse.X != 10 || mouse.Y != 20 {
		t.Fatalf("unexpected mouse state: %+v", mouse)
	}

	if got := port.out.Bytes(); len(got) != 1 ||
		got[0] != flagRunning|flag128K|flagMouse {
		t.Fatalf("unexpected STATUS reply: % X", got)
	}

	if d.machine.Registers().PC != 0 {
		t.Fatal("machine not reset")
	}
}

//
func TestMouseWithoutMouse(t *testing.T) {

	d := newTestDaemon(t, Config{Model: spectrum.Model48K})
	cmd := newCommand([]byte{CmdMouse, 0, 0, 0}, nil)
	if err := cmd.dispatch(d); err == nil {
		t.Fatal("expected error without mouse")
	}

	cmd = newCommand([]byte{CmdKeys, 8, 0, 0}, nil)
	if err := cmd.dispatch(d); err == nil {
		t.Fatal("expected error for invalid row")
	}
}

//
func TestLoadSave(t *testing.T) {

	d := newTestDaemon(t, Config{Model: spectrum.Model128K})
	d.machine.Registers().PC = 0x8000
	d.machine.WriteByte(0x4000, 0x3C)

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatal(err)
	}

	d2 := newTestDaemon(t, Config{Model: spectrum.Model128K})
	if err := d2.Load(&buf); err != nil {
		t.Fatal(err)
	}

	s := d2.Status()
	if s.PC != 0x8000 || s.Model != "128k" || s.Locked48K {
		t.Fatalf("unexpected status: %+v", s)
	}
	if scr := d2.Screen(); scr[0] != 0x3C {
		t.Fatal("screen not loaded")
	}

	if err := d2.Load(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("expected error for broken snapshot")
	}

	lines := d2.Disassemble(0x4000, 2)
	if len(lines) != 2 {
		t.Fatalf("unexpected disassembly: %v", lines)
	}
}

//
func TestConfig(t *testing.T) {

	d := newTestDaemon(t, Config{Model: spectrum.Model48K, Pacing: true})

	if v, err := d.GetConfig(ConfigItemPacing); err != nil || v != true {
		t.Fatalf("pacing: %v, %v", v, err)
	}
	if err := d.SetConfig(ConfigItemPaused, true); err != nil {
		t.Fatal(err)
	}
	if !d.Status().Paused {
		t.Fatal("not paused")
	}
	if _, err := d.GetConfig("turbo"); err == nil {
		t.Fatal("expected error for unknown item")
	}
	if err := d.SetConfig("turbo", true); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

//
func TestServe(t *testing.T) {

	d := newTestDaemon(t, Config{Model: spectrum.Model48K, Pacing: true})

	done := make(chan error)
	go func() {
		done <- d.Serve()
	}()

	deadline := time.Now().Add(5 * time.Second)
	for d.Status().Frames < 3 {
		if time.Now().After(deadline) {
			t.Fatal("frame pump not running")
		}
		time.Sleep(10 * time.Millisecond)
	}

	d.SetConfig(ConfigItemPaused, true)
	time.Sleep(50 * time.Millisecond)
	frames := d.Status().Frames
	time.Sleep(100 * time.Millisecond)
	if d.Status().Frames != frames {
		t.Fatal("frame pump not paused")
	}

	d.Stop()
	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

//
func TestMissingROM(t *testing.T) {
	if _, err := NewDaemon(Config{
		Model: spectrum.Model48K, ROMs: []string{"/nonexistent/48.rom"}}); err == nil {
		t.Fatal("expected error for missing ROM")
	}
}
