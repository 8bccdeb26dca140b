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

package repo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/snapshot"
	"github.com/xelalexv/zxcore/pkg/util"
)

const (
	// pending index actions before a batch is committed
	maxBatch = 100
	// quiet period after file changes before pending actions are committed
	watchBackoff = 5 * time.Second
)

// Entry is the indexed document for a snapshot file.
type Entry struct {
	Name     string
	Type     string
	Model    string
	Hardware string
	Version  int
}

/*
	Index keeps a bleve full text index of the snapshot files in a repository
	directory. Once started, it follows changes to the repository through a
	directory watcher.
*/
type Index struct {
	base    string
	repo    string
	stopped bool
	fresh   bool
	//
	index   bleve.Index
	watcher *util.DirWatcher
	//
	batch   *bleve.Batch
	pending int
}

// NewIndex opens the index stored in base for the repository in repo. If
// there is no index in base yet, a new one is created.
func NewIndex(base, repo string) (*Index, error) {

	var err error
	i := &Index{}

	if i.base, err = filepath.Abs(base); err != nil {
		return nil, err
	}
	if i.repo, err = filepath.Abs(repo); err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{"index": i.base, "repo": i.repo})

	i.index, err = bleve.Open(i.base)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		logger.Info("creating new index")
		i.index, err = bleve.New(i.base, newMapping())
		i.fresh = true
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open index %s: %v", i.base, err)
	}

	logger.WithField("new", i.fresh).Info("index opened")
	i.batch = i.index.NewBatch()
	return i, nil
}

// newMapping indexes model and hardware as keywords, so they can be used for
// exact filtering. Everything else is analyzed as text.
func newMapping() mapping.IndexMapping {

	kw := bleve.NewTextFieldMapping()
	kw.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("Model", kw)
	doc.AddFieldMappingsAt("Hardware", kw)
	doc.AddFieldMappingsAt("Version", bleve.NewNumericFieldMapping())

	ret := bleve.NewIndexMapping()
	ret.DefaultMapping = doc
	return ret
}

//
func (i *Index) Start() error {

	start := time.Now()
	if err := i.prune(); err != nil {
		return fmt.Errorf("error pruning index: %v", err)
	}
	if err := i.update(); err != nil {
		return fmt.Errorf("error updating index: %v", err)
	}
	if err := i.commit(); err != nil {
		return err
	}
	log.WithField("duration", time.Since(start)).Info("index synchronized")

	var err error
	if i.watcher, err = util.NewDirWatcher(i.repo); err != nil {
		return fmt.Errorf("error creating repo watcher: %v", err)
	}
	if err = i.watcher.Start(watchBackoff, i.fileChanged, i.commit); err != nil {
		return fmt.Errorf("error starting repo watcher: %v", err)
	}

	log.Info("index ready")
	return nil
}

//
func (i *Index) Stop() {

	i.stopped = true

	if i.watcher != nil {
		i.watcher.Stop()
	}

	if i.index != nil {
		if err := i.index.Close(); err != nil {
			log.Errorf("error closing index: %v", err)
		}
	}
}

// prune removes entries for files that are no longer present in the
// repository.
func (i *Index) prune() error {

	if i.fresh {
		return nil
	}

	count, err := i.index.DocCount()
	if err != nil || count == 0 {
		return err
	}

	req := bleve.NewSearchRequestOptions(
		bleve.NewMatchAllQuery(), int(count), 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return err
	}

	removed := 0
	for _, h := range res.Hits {
		if _, err := os.Stat(filepath.Join(i.repo, h.ID)); os.IsNotExist(err) {
			i.remove(h.ID)
			removed++
		}
	}

	log.WithFields(log.Fields{
		"entries": count, "removed": removed}).Debug("index pruned")
	return nil
}

// update adds all snapshot files that changed since the index was last
// written to.
func (i *Index) update() error {

	var since time.Time
	if !i.fresh {
		if store, err := os.Stat(filepath.Join(i.base, "store")); err == nil {
			since = store.ModTime()
		}
	}
	i.fresh = false

	log.WithField("since", since).Debug("updating index")

	return filepath.WalkDir(i.repo, func(path string, d fs.DirEntry, err error) error {

		if i.stopped {
			return fmt.Errorf("index stopped")
		}
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != i.repo && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(since) {
			return i.add(i.relative(path))
		}
		return nil
	})
}

//
func (i *Index) fileChanged(evt fsnotify.Event) error {

	rel := i.relative(evt.Name)
	logger := log.WithFields(log.Fields{"file": rel, "op": evt.Op})

	switch {

	case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		logger.Debug("file gone")
		return i.remove(rel)

	case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(evt.Name)
		if err != nil {
			logger.Warnf("cannot stat changed file: %v", err)
			return nil
		}
		if !info.IsDir() {
			logger.Debug("file changed")
			return i.add(rel)
		}
	}

	return nil
}

// add queues an entry for the snapshot file at path, relative to the
// repository. Files that are not snapshots are ignored.
func (i *Index) add(path string) error {

	name, typ, _ := snapshot.SplitNameTypeCompressor(path)
	if typ != snapshot.TypeZ80 && typ != snapshot.TypeSCR {
		return nil
	}

	entry := &Entry{
		Name: cleanName(filepath.Join(filepath.Dir(path), name)),
		Type: typ,
	}

	if typ == snapshot.TypeZ80 {
		if info, err := i.readInfo(path); err != nil {
			log.WithField("file", path).Warnf(
				"cannot read snapshot header: %v", err)
		} else {
			entry.Model = info.ModelName
			entry.Hardware = info.Hardware
			entry.Version = info.Version
		}
	}

	if err := i.batch.Index(path, entry); err != nil {
		return fmt.Errorf("cannot index %s: %v", path, err)
	}
	return i.queued()
}

//
func (i *Index) readInfo(path string) (*snapshot.Info, error) {

	rd, err := Open(filepath.Join(i.repo, path))
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	data, err := io.ReadAll(io.LimitReader(rd, snapshot.MaxSize))
	if err != nil {
		return nil, err
	}

	return snapshot.ReadInfo(data)
}

//
func (i *Index) remove(path string) error {
	i.batch.Delete(path)
	return i.queued()
}

// queued commits the pending batch once it is large enough. Not thread safe;
// once the index is started, entries are only queued from the watcher.
func (i *Index) queued() error {
	if i.pending++; i.pending >= maxBatch {
		return i.commit()
	}
	return nil
}

//
func (i *Index) commit() error {

	if i.pending == 0 {
		return nil
	}

	log.WithField("actions", i.pending).Debug("committing index batch")
	if err := i.index.Batch(i.batch); err != nil {
		return fmt.Errorf("failed to commit index batch: %v", err)
	}

	i.batch = i.index.NewBatch()
	i.pending = 0
	return nil
}

// Repo returns the absolute path of the snapshot repository.
func (i *Index) Repo() string {
	return i.repo
}

//
func (i *Index) relative(path string) string {
	if rel, err := filepath.Rel(i.repo, path); err == nil &&
		!strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// cleanName turns punctuation into blanks, so that the parts of a file name
// become separate search terms.
func cleanName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r != os.PathSeparator && unicode.IsPunct(r)) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, name)
}
