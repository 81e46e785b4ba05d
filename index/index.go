// Read index — a non-authoritative SQLite mirror of finished games
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

// Package index implements C9: a SQLite read index fed by store's
// finalize hook. It is never the source of truth — the flat-file archive
// under GamesDir/ScoresDir always is — and every error here is logged and
// swallowed rather than surfaced to the game protocol (spec §7: Transient
// I/O).
package index

import (
	"database/sql"
	"embed"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-mind"
	"go-mind/store"
)

//go:embed schema.sql
var schemaFS embed.FS

// Row is one finished game as mirrored into the index.
type Row struct {
	PLID       string
	EndCode    string
	Score      int
	Trials     int
	Mode       string
	FinishedAt time.Time
}

type event struct {
	plid   string
	end    mind.EndCode
	score  int
	trials int
	mode   string
	stamp  time.Time
}

// Index owns the SQLite connections and the background writer that drains
// finalize events onto disk.
type Index struct {
	write *sql.DB
	read  *sql.DB

	insert *sql.Stmt

	events chan event
	shut   chan struct{}
}

// New opens (creating if necessary) the SQLite file at path and prepares
// its schema and statements. Writes use a dedicated single-connection
// *sql.DB, matching the teacher's split read/write pool so SQLite's
// single-writer limitation never serializes reads behind a write.
func New(path string) (*Index, error) {
	write, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxLifetime(0)

	read, err := sql.Open("sqlite3", path)
	if err != nil {
		write.Close()
		return nil, err
	}
	read.SetMaxIdleConns(1)
	read.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"journal_mode = WAL",
		"synchronous = normal",
		"foreign_keys = on",
	} {
		if _, err := write.Exec("PRAGMA " + pragma + ";"); err != nil {
			write.Close()
			read.Close()
			return nil, err
		}
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		write.Close()
		read.Close()
		return nil, err
	}
	if _, err := write.Exec(string(schema)); err != nil {
		write.Close()
		read.Close()
		return nil, err
	}

	insert, err := write.Prepare(
		`INSERT INTO finished_games (plid, end_code, score, trials, mode, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		write.Close()
		read.Close()
		return nil, err
	}

	return &Index{
		write:  write,
		read:   read,
		insert: insert,
		events: make(chan event, 64),
		shut:   make(chan struct{}),
	}, nil
}

func (ix *Index) String() string { return "Game Index" }

// OnFinalize is registered as the store's FinalizeHook. It must never
// block the store's dispatcher goroutine, so a full event queue simply
// drops the event — the index is a best-effort mirror, not a ledger.
func (ix *Index) OnFinalize(g *store.Game, end mind.EndCode) {
	e := event{
		plid:   g.PLID,
		end:    end,
		score:  g.Score(time.Now()),
		trials: len(g.Trials),
		mode:   g.Mode.String(),
		stamp:  time.Now(),
	}
	select {
	case ix.events <- e:
	default:
		mind.Log.Printf("index: dropped finalize event for %s, queue full", g.PLID)
	}
}

// Start drains finalize events into SQLite and runs a daily VACUUM/
// optimize pass, mirroring the teacher's day-ticker housekeeping.
func (ix *Index) Start() {
	tick := time.NewTicker(24 * time.Hour)
	defer tick.Stop()

	for {
		select {
		case e := <-ix.events:
			if _, err := ix.insert.Exec(e.plid, e.end.String(), e.score, e.trials, e.mode, e.stamp); err != nil {
				mind.Log.Print(err)
			}
		case <-tick.C:
			if _, err := ix.write.Exec("PRAGMA optimize;"); err != nil {
				mind.Log.Print(err)
			}
			if _, err := ix.write.Exec("VACUUM;"); err != nil {
				mind.Log.Print(err)
			}
		case <-ix.shut:
			return
		}
	}
}

func (ix *Index) Shutdown() {
	close(ix.shut)
	ix.write.Exec("PRAGMA optimize;")
	ix.write.Close()
	ix.read.Close()
}

// Top10 reports the ten highest-scoring finished games, mirroring
// scoreboard.Top10's ranking but served from SQLite for the dashboard.
func (ix *Index) Top10() ([]Row, error) {
	rows, err := ix.read.Query(
		`SELECT plid, end_code, score, trials, mode, finished_at
		 FROM finished_games
		 ORDER BY score DESC, finished_at DESC
		 LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.PLID, &r.EndCode, &r.Score, &r.Trials, &r.Mode, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Recent reports the n most recently finished games regardless of score,
// for the dashboard's activity feed.
func (ix *Index) Recent(n int) ([]Row, error) {
	rows, err := ix.read.Query(
		`SELECT plid, end_code, score, trials, mode, finished_at
		 FROM finished_games
		 ORDER BY finished_at DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.PLID, &r.EndCode, &r.Score, &r.Trials, &r.Mode, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
