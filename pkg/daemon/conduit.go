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
	"sync"
	"time"

	"github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"
)

const (
	commandLength = 4
	defaultBaud   = 1000000

	// serial reads return after this many milliseconds without data, so that
	// a closed conduit is noticed
	readTimeout = 100
	// pause after an empty read
	readBackoff = 10 * time.Millisecond
)

var errConduitClosed = fmt.Errorf("conduit closed")

//
func openConduit(port string, baud int) (*conduit, error) {

	if baud <= 0 {
		baud = defaultBaud
	}

	log.WithFields(log.Fields{"port": port, "baud": baud}).Info(
		"opening serial port")

	p, err := serial.Open(serial.OpenOptions{
		PortName:              port,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: readTimeout,
	})
	if err != nil {
		return nil, err
	}

	return newConduit(p), nil
}

//
func newConduit(port io.ReadWriteCloser) *conduit {
	return &conduit{port: port}
}

// conduit is the serial link to the peripheral adapter.
type conduit struct {
	port   io.ReadWriteCloser
	mutex  sync.Mutex
	closed bool
}

//
func (c *conduit) receiveCommand() (*command, error) {
	data := make([]byte, commandLength)
	if err := c.receive(data); err != nil {
		return nil, err
	}
	return newCommand(data, c), nil
}

// receive fills data completely, tolerating empty reads caused by the read
// timeout.
func (c *conduit) receive(data []byte) error {

	for got := 0; got < len(data); {

		if c.isClosed() {
			return errConduitClosed
		}

		n, err := c.port.Read(data[got:])
		got += n

		if err == io.EOF && n == 0 {
			time.Sleep(readBackoff)
			continue
		}
		if err != nil && err != io.EOF {
			return err
		}
	}

	return nil
}

//
func (c *conduit) send(data []byte) error {
	if c.isClosed() {
		return errConduitClosed
	}
	_, err := c.port.Write(data)
	return err
}

//
func (c *conduit) isClosed() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.closed
}

//
func (c *conduit) close() {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	if err := c.port.Close(); err != nil {
		log.Errorf("error closing serial port: %v", err)
	}
}
