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
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/zxcore/pkg/daemon"
	"github.com/xelalexv/zxcore/pkg/repo"
)

//
type APIServer interface {
	Serve() error
	Stop() error
}

//
func NewAPIServer(addr string, d *daemon.Daemon, index *repo.Index,
	repository string) APIServer {
	return &api{
		address:    addr,
		daemon:     d,
		index:      index,
		repository: repository,
	}
}

//
type api struct {
	address    string
	server     *http.Server
	daemon     *daemon.Daemon
	index      *repo.Index
	repository string
}

//
func (a *api) Serve() error {

	a.server = &http.Server{
		Addr:         a.address,
		Handler:      a.router(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.WithField("address", a.address).Info("API server starting")
	if err := a.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	log.Info("API server stopped")
	return nil
}

//
func (a *api) Stop() error {

	if a.server == nil {
		return nil
	}

	log.Info("API server stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

//
func (a *api) router() *mux.Router {

	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequest)

	router.HandleFunc("/status", a.status).Methods("GET")
	router.HandleFunc("/version", a.version).Methods("GET")
	router.HandleFunc("/config", a.getConfig).Methods("GET")
	router.HandleFunc("/config", a.setConfig).Methods("PUT")
	router.HandleFunc("/snapshot", a.load).Methods("PUT")
	router.HandleFunc("/snapshot", a.save).Methods("GET")
	router.HandleFunc("/screen", a.screen).Methods("GET")
	router.HandleFunc("/reset", a.reset).Methods("PUT")
	router.HandleFunc("/nmi", a.nmi).Methods("PUT")
	router.HandleFunc("/keys", a.keys).Methods("PUT")
	router.HandleFunc("/memory", a.memory).Methods("GET")
	router.HandleFunc("/disasm", a.disasm).Methods("GET")
	router.HandleFunc("/search", a.search).Methods("GET")

	return router
}

//
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.WithFields(log.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"remote": req.RemoteAddr}).Debug("API request")
		next.ServeHTTP(w, req)
	})
}
