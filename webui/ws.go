// Dashboard WebSocket feed
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

package webui

import (
	"net/http"

	"github.com/gorilla/websocket"

	"go-mind"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection and pushes a "refresh" text message every
// time NotifyFinalize fires, telling the page to reload rather than
// shipping a full state diff — the dashboard is a convenience view, not a
// protocol client.
func (d *Dashboard) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		mind.Log.Print(err)
		return
	}
	defer conn.Close()

	refresh := make(chan struct{}, 1)
	done := make(chan struct{})
	d.mu.Lock()
	d.clients[refresh] = struct{}{}
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.clients, refresh)
		d.mu.Unlock()
	}()

	// Drain client-initiated messages so a dropped connection is
	// detected promptly; the dashboard reads nothing meaningful from
	// the client.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()

	for {
		select {
		case <-refresh:
			if err := conn.WriteMessage(websocket.TextMessage, []byte("refresh")); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
