// Dashboard HTTP routes
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
	"time"

	"go-mind"
	"go-mind/index"
)

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	top, err := d.Index.Top10()
	if err != nil {
		mind.Log.Print(err)
	}

	w.Header().Set("Content-Type", "text/html")
	err = tmpl.ExecuteTemplate(w, "index.tmpl", struct {
		ActiveCount int
		Top         []index.Row
	}{
		ActiveCount: len(d.Store.Snapshot()),
		Top:         top,
	})
	if err != nil {
		mind.Log.Print(err)
	}
}

// gameRow is one active game as rendered on /games.
type gameRow struct {
	PLID      string
	Mode      string
	Trials    int
	Remaining int
}

func (d *Dashboard) handleGames(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	var rows []gameRow
	for _, g := range d.Store.Snapshot() {
		remaining := g.MaxTime - int(now.Sub(g.StartTime).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		rows = append(rows, gameRow{
			PLID:      g.PLID,
			Mode:      g.Mode.String(),
			Trials:    len(g.Trials),
			Remaining: remaining,
		})
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.ExecuteTemplate(w, "games.tmpl", struct{ Games []gameRow }{rows}); err != nil {
		mind.Log.Print(err)
	}
}
