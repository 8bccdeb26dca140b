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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {
	if e == nil {
		return false
	}
	log.Errorf("%v", e)
	sendReply([]byte(fmt.Sprintf("%v\n", e)), statusCode, w)
	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Errorf("problem writing reply: %v", err)
	}
}

//
func sendStreamReply(r io.Reader, contentType string, statusCode int,
	w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := io.Copy(w, r); err != nil {
		log.Errorf("problem writing reply: %v", err)
	}
}

/*
	sendPipeReply streams what produce writes. The reading end is closed once
	the reply is done, so produce returns even when the client went away.
*/
func sendPipeReply(produce func(w io.Writer) error, contentType string,
	statusCode int, w http.ResponseWriter) {

	read, write := io.Pipe()
	defer read.Close()

	go func() {
		write.CloseWithError(produce(write))
	}()

	sendStreamReply(read, contentType, statusCode, w)
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem encoding reply: %v", err)
	}
}

//
func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

//
func getArg(req *http.Request, arg string) string {
	return strings.TrimSpace(req.URL.Query().Get(arg))
}

// getIntArg accepts decimal and 0x prefixed hex values.
func getIntArg(req *http.Request, arg string, def int) (int, error) {
	val := getArg(req, arg)
	if val == "" {
		return def, nil
	}
	ret, err := strconv.ParseInt(val, 0, 32)
	if err != nil {
		return def, fmt.Errorf("invalid value for '%s': %s", arg, val)
	}
	return int(ret), nil
}

//
func getRef(req *http.Request) (string, error) {
	ref := getArg(req, "ref")
	if ref != "" && !strings.Contains(ref, "://") {
		return ref, fmt.Errorf("invalid reference: %s", ref)
	}
	return ref, nil
}

//
func isFlagSet(req *http.Request, flag string) bool {
	switch strings.ToLower(getArg(req, flag)) {
	case "true", "on", "yes", "1":
		return true
	}
	return false
}
