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

package control

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// brokenWriter fails every body write, like the connection of a client that
// went away.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (b *brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

//
func TestPipeReplyClientGone(t *testing.T) {

	done := make(chan error, 1)
	produce := func(w io.Writer) error {
		chunk := make([]byte, 1024)
		for i := 0; i < 1024; i++ {
			if _, err := w.Write(chunk); err != nil {
				done <- err
				return err
			}
		}
		done <- nil
		return nil
	}

	sendPipeReply(produce, "application/octet-stream", http.StatusOK,
		&brokenWriter{httptest.NewRecorder()})

	select {
	case err := <-done:
		if err != io.ErrClosedPipe {
			t.Fatalf("producer ended with %v, want %v", err, io.ErrClosedPipe)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("producer still blocked after reply was abandoned")
	}
}

//
func TestPipeReplyComplete(t *testing.T) {

	rec := httptest.NewRecorder()
	sendPipeReply(func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "text/plain", http.StatusOK, rec)

	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("unexpected reply: %d %q", rec.Code, rec.Body.String())
	}
}
