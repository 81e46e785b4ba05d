// Web dashboard — read-only HTTP+WebSocket view of live games and scores
//
// Copyright (c) 2024 go-mind contributors
//
// This file is part of go-mind.
//
// go-mind is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-mind is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-mind. If not, see
// <http://www.gnu.org/licenses/>

// Package webui implements C10: a read-only dashboard over the game
// store and the read index. It can never start, try, or quit a game —
// only the wire protocol handled by listener/handlers can do that.
package webui

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"go-mind"
	"go-mind/index"
	"go-mind/store"
)

//go:embed static
var staticFS embed.FS

//go:embed *.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "*.tmpl"))

// Dashboard owns the HTTP server and the set of connected WebSocket
// clients that get pushed a refresh notice on every finalized game.
type Dashboard struct {
	Addr  string
	Store *store.Store
	Index *index.Index

	srv *http.Server

	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

func New(addr string, s *store.Store, ix *index.Index) *Dashboard {
	return &Dashboard{
		Addr:    addr,
		Store:   s,
		Index:   ix,
		clients: make(map[chan struct{}]struct{}),
	}
}

func (d *Dashboard) String() string { return "Web Dashboard " + d.Addr }

func (d *Dashboard) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", d.handleIndex)
	mux.HandleFunc("/games", d.handleGames)
	mux.HandleFunc("/ws", d.handleWS)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))

	d.srv = &http.Server{Addr: d.Addr, Handler: mux}
	if err := d.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		mind.Log.Print(err)
	}
}

func (d *Dashboard) Shutdown() {
	if d.srv != nil {
		d.srv.Shutdown(context.Background())
	}
}

// NotifyFinalize is meant to be composed into the store's FinalizeHook
// alongside Index.OnFinalize, so every connected dashboard client is told
// to refresh as soon as a game reaches a terminal state.
func (d *Dashboard) NotifyFinalize(*store.Game, mind.EndCode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for c := range d.clients {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}
