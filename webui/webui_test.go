// Dashboard tests
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
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-mind"
	"go-mind/index"
	"go-mind/store"
)

func newTestDashboard(t *testing.T) (*Dashboard, *store.Store) {
	t.Helper()
	s := store.New(t.TempDir(), t.TempDir())
	go s.Start()
	t.Cleanup(s.Shutdown)

	ix, err := index.New(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("index.New: %s", err)
	}
	go ix.Start()
	t.Cleanup(ix.Shutdown)

	return New(":0", s, ix), s
}

func TestHandleIndexRendersEmptyScoreboard(t *testing.T) {
	d, _ := newTestDashboard(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	d.handleIndex(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No finished games yet.") {
		t.Fatalf("body missing empty-scoreboard message: %s", rec.Body.String())
	}
}

func TestHandleGamesListsActiveGames(t *testing.T) {
	d, s := newTestDashboard(t)

	secret := mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow}
	g, err := store.NewGame(s.GamesDir, "123456", 60, mind.Play, secret)
	if err != nil {
		t.Fatalf("NewGame: %s", err)
	}
	s.Insert(g)

	req := httptest.NewRequest("GET", "/games", nil)
	rec := httptest.NewRecorder()
	d.handleGames(rec, req)

	if !strings.Contains(rec.Body.String(), "123456") {
		t.Fatalf("body missing active PLID: %s", rec.Body.String())
	}
}

func TestNotifyFinalizeBroadcastsToClients(t *testing.T) {
	d, _ := newTestDashboard(t)

	client := make(chan struct{}, 1)
	d.mu.Lock()
	d.clients[client] = struct{}{}
	d.mu.Unlock()

	d.NotifyFinalize(nil, mind.Win)

	select {
	case <-client:
	case <-time.After(time.Second):
		t.Fatal("expected NotifyFinalize to signal the registered client")
	}
}
