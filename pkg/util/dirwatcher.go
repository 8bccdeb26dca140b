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

package util

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

/*
	DirWatcher watches a directory tree for changes. Directories created in the
	tree later on are added to the watch, hidden directories are skipped.
*/
type DirWatcher struct {
	root    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	mutex   sync.Mutex
}

//
func NewDirWatcher(dir string) (*DirWatcher, error) {

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ret := &DirWatcher{root: filepath.Clean(dir), watcher: w}

	if err := ret.watchTree(ret.root); err != nil {
		w.Close()
		return nil, fmt.Errorf("cannot watch %s: %v", dir, err)
	}

	return ret, nil
}

/*
	Start calls handler for every change in the watched tree. Once changes have
	settled for the backoff duration, flush is called. Handler and flush are
	always called from the same go routine.
*/
func (dw *DirWatcher) Start(backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) error {

	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.watcher == nil {
		return fmt.Errorf("directory watcher already stopped")
	}
	if dw.done != nil {
		return fmt.Errorf("directory watcher already started")
	}

	dw.done = make(chan struct{})
	go dw.run(dw.watcher, backoff, handler, flush)

	return nil
}

//
func (dw *DirWatcher) run(w *fsnotify.Watcher, backoff time.Duration,
	handler func(fsnotify.Event) error, flush func() error) {

	defer close(dw.done)

	var settled <-chan time.Time

	for {
		select {

		case evt, ok := <-w.Events:
			if !ok {
				log.Debug("directory watcher routine exiting")
				return
			}
			if evt.Op&fsnotify.Create != 0 {
				dw.watchTree(evt.Name)
			}
			if err := handler(evt); err != nil {
				log.Errorf("error handling change of %s: %v", evt.Name, err)
			}
			settled = time.After(backoff)

		case err, ok := <-w.Errors:
			if ok {
				log.Errorf("directory watcher error: %v", err)
			}

		case <-settled:
			settled = nil
			if err := flush(); err != nil {
				log.Errorf("error flushing changes: %v", err)
			}
		}
	}
}

// Stop closes the watcher and waits for its routine to exit. A stopped
// watcher cannot be started again.
func (dw *DirWatcher) Stop() {

	dw.mutex.Lock()
	defer dw.mutex.Unlock()

	if dw.watcher == nil {
		return
	}

	log.WithField("root", dw.root).Info("closing directory watcher")
	if err := dw.watcher.Close(); err != nil {
		log.Errorf("could not close directory watcher: %v", err)
	}
	if dw.done != nil {
		<-dw.done
	}
	dw.watcher = nil
}

// watchTree adds all directories below and including path to the watch. If
// path is not a directory, nothing happens.
func (dw *DirWatcher) watchTree(path string) error {

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {

		if err != nil {
			if p == path {
				return err
			}
			log.Warnf("cannot read %s: %v", p, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if p != dw.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		log.WithField("dir", p).Debug("watching directory")
		return dw.watcher.Add(p)
	})
}
