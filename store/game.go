// Game record — in-memory game state and its file-backed mirror
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

// Package store implements C4 (the game record and its on-disk mirror)
// and C5 (the live-game store) of the specification.
package store

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-mind"
)

const timeLayout = "2006-01-02 15:04:05"

// Game is the in-memory record of one player's game, mirrored to a file
// under gamesDir while active and renamed under gamesDir/PLID when it
// reaches a terminal state.
type Game struct {
	PLID      string
	Mode      mind.Mode
	Secret    mind.Code
	MaxTime   int
	StartTime time.Time
	Trials    []mind.Code
	Active    bool

	gamesDir string
}

func gamePath(gamesDir, plid string) string {
	return filepath.Join(gamesDir, "GAME_"+plid+".txt")
}

// GamePath returns the path of plid's in-progress mirror file, for
// callers (handlers.STR) that need to read it directly while a game is
// still active.
func GamePath(gamesDir, plid string) string { return gamePath(gamesDir, plid) }

// NewGame constructs a game record, stamps its start time, and writes
// the in-progress mirror file's header line immediately (spec §4.4).
func NewGame(gamesDir, plid string, maxTime int, mode mind.Mode, secret mind.Code) (*Game, error) {
	g := &Game{
		PLID:      plid,
		Mode:      mode,
		Secret:    secret,
		MaxTime:   maxTime,
		StartTime: time.Now(),
		Active:    true,
		gamesDir:  gamesDir,
	}
	if err := g.writeHeader(); err != nil {
		return nil, err
	}
	return g, nil
}

// RandomSecret draws a uniform-random 4-color code.
func RandomSecret(rng *rand.Rand) mind.Code {
	var c mind.Code
	for i := range c {
		c[i] = mind.Colors[rng.Intn(len(mind.Colors))]
	}
	return c
}

func (g *Game) path() string { return gamePath(g.gamesDir, g.PLID) }

func (g *Game) writeHeader() error {
	if err := os.MkdirAll(g.gamesDir, 0777); err != nil {
		return err
	}
	f, err := os.Create(g.path())
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s %c %s %d %s %d\n",
		g.PLID, byte(g.Mode), g.Secret, g.MaxTime,
		g.StartTime.UTC().Format(timeLayout), g.StartTime.Unix())
	return err
}

// AppendTrial records one accepted guess: it is pushed onto Trials and
// the matching "T:" line is appended to the mirror file.
func (g *Game) AppendTrial(guess mind.Code, nB, nW int) error {
	f, err := os.OpenFile(g.path(), os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	elapsed := int(time.Since(g.StartTime).Seconds())
	_, err = fmt.Fprintf(f, "T: %s %d %d %d\n", guess, nB, nW, elapsed)
	if err != nil {
		return err
	}
	g.Trials = append(g.Trials, guess)
	return nil
}

// IsTimeExceeded reports whether now is past the game's deadline.
func (g *Game) IsTimeExceeded(now time.Time) bool {
	return now.Sub(g.StartTime) > time.Duration(g.MaxTime)*time.Second
}

// HasDuplicate reports whether guess has already been tried.
func (g *Game) HasDuplicate(guess mind.Code) bool {
	for _, t := range g.Trials {
		if t.Equal(guess) {
			return true
		}
	}
	return false
}

// Score implements the spec §4.4 win-scoring formula.
func (g *Game) Score(finishedAt time.Time) int {
	elapsed := finishedAt.Sub(g.StartTime).Seconds()
	timePct := 1 - elapsed/float64(g.MaxTime)
	if timePct < 0 {
		timePct = 0
	}
	trialPct := 1 - float64(len(g.Trials))/float64(mind.MaxAttempts)

	score := round(timePct*50) + round(trialPct*50)
	switch {
	case score < 0:
		score = 0
	case score > 100:
		score = 100
	}
	return score
}

func round(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}

// Finalize transitions the game to a terminal state: it appends the
// trailing timestamp line, writes a score file on a win, and renames the
// mirror file into the player's archive directory. It is a no-op if the
// game is already inactive.
func (g *Game) Finalize(end mind.EndCode, scoresDir string) error {
	if !g.Active {
		return nil
	}
	g.Active = false
	now := time.Now()
	elapsed := int(now.Sub(g.StartTime).Seconds())

	f, err := os.OpenFile(g.path(), os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%s %d\n", now.UTC().Format(timeLayout), elapsed)
	f.Close()
	if err != nil {
		return err
	}

	if end == mind.Win {
		if err := g.writeScoreFile(scoresDir, now); err != nil {
			return err
		}
	}

	playerDir := filepath.Join(g.gamesDir, g.PLID)
	if err := os.MkdirAll(playerDir, 0777); err != nil {
		return err
	}
	dest := filepath.Join(playerDir,
		fmt.Sprintf("%s_%c.txt", now.UTC().Format("20060102_150405"), byte(end)))
	return os.Rename(g.path(), dest)
}

func (g *Game) writeScoreFile(scoresDir string, finishedAt time.Time) error {
	if err := os.MkdirAll(scoresDir, 0777); err != nil {
		return err
	}
	score := g.Score(finishedAt)
	name := fmt.Sprintf("%03d_%s_%s.txt",
		score, g.PLID, finishedAt.UTC().Format("02012006_150405"))

	f, err := os.Create(filepath.Join(scoresDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	code := strings.ReplaceAll(g.Secret.String(), " ", "")
	_, err = fmt.Fprintf(f, "%03d %s %s %d %s\n",
		score, g.PLID, code, len(g.Trials), g.Mode)
	return err
}
