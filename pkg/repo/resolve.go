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
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

/*
	Resolve opens the snapshot source a reference points to. Supported schemes
	are repo:// for files in the snapshot repository, file:// for local files,
	and http(s):// for downloads. The returned source is not decompressed.
*/
func Resolve(ref, repository string) (io.ReadCloser, error) {

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid reference '%s': %v", ref, err)
	}

	log.WithFields(log.Fields{"scheme": u.Scheme, "ref": ref}).Debug(
		"resolving reference")

	switch u.Scheme {

	case "repo":
		if repository == "" {
			return nil, fmt.Errorf("no snapshot repository configured")
		}
		file, err := repoPath(repository, u.Host+u.Path)
		if err != nil {
			return nil, err
		}
		return NewFileSource(file)

	case "file":
		return NewFileSource(u.Path)

	case "http", "https":
		return NewHTTPSource(ref)
	}

	return nil, fmt.Errorf("unsupported reference scheme: '%s'", u.Scheme)
}

// repoPath turns a path relative to the repository into an absolute path,
// refusing anything outside of the repository.
func repoPath(repository, rel string) (string, error) {

	base, err := filepath.Abs(repository)
	if err != nil {
		return "", err
	}

	ret := filepath.Join(base, filepath.FromSlash(rel))
	if ret != base && !strings.HasPrefix(ret, base+string(filepath.Separator)) {
		return "", fmt.Errorf("reference outside of repository: %s", rel)
	}

	return ret, nil
}
