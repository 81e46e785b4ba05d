// Request handlers — one per verb, sole authority for state transitions
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

// Package handlers implements C6: the per-verb request handlers that
// enforce the game's state machine (spec §4.6) and render responses with
// the codec package.
package handlers

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-mind"
	"go-mind/codec"
	"go-mind/match"
	"go-mind/scoreboard"
	"go-mind/store"
	"go-mind/validate"
)

// Handlers holds the live-game store every verb handler mutates.
type Handlers struct {
	Store *store.Store

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(s *store.Store) *Handlers {
	return &Handlers{
		Store: s,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (h *Handlers) randomSecret() mind.Code {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return store.RandomSecret(h.rng)
}

func parseCode(tokens []string) (mind.Code, bool) {
	var c mind.Code
	if len(tokens) != 4 {
		return c, false
	}
	for i, tok := range tokens {
		if !validate.Color(tok) {
			return c, false
		}
		c[i] = mind.Color(tok[0])
	}
	return c, true
}

// SNG — Start New (spec §4.6 "SNG").
func (h *Handlers) SNG(args []string) []byte {
	if len(args) != 2 {
		return []byte(codec.FormatLine("RSG", "ERR"))
	}
	plid := args[0]
	maxTime, err := strconv.Atoi(args[1])
	if err != nil || !validate.PLID(plid) || !validate.Time(maxTime) {
		return []byte(codec.FormatLine("RSG", "ERR"))
	}

	now := time.Now()
	existing, timedOut := h.Store.Sweep(plid, now)
	if existing != nil && !timedOut {
		if len(existing.Trials) > 0 {
			return []byte(codec.FormatLine("RSG", "NOK"))
		}
		h.Store.Erase(plid)
	}

	g, err := store.NewGame(h.Store.GamesDir, plid, maxTime, mind.Play, h.randomSecret())
	if err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RSG", "ERR"))
	}
	h.Store.Insert(g)
	return []byte(codec.FormatLine("RSG", "OK"))
}

// DBG — Debug-Start (spec §4.6 "DBG"). Identical to SNG except the
// caller supplies the secret.
func (h *Handlers) DBG(args []string) []byte {
	if len(args) != 6 {
		return []byte(codec.FormatLine("RDB", "ERR"))
	}
	plid := args[0]
	maxTime, err := strconv.Atoi(args[1])
	secret, okCode := parseCode(args[2:6])
	if err != nil || !validate.PLID(plid) || !validate.Time(maxTime) || !okCode {
		return []byte(codec.FormatLine("RDB", "ERR"))
	}

	now := time.Now()
	existing, timedOut := h.Store.Sweep(plid, now)
	if existing != nil && !timedOut {
		if len(existing.Trials) > 0 {
			return []byte(codec.FormatLine("RDB", "NOK"))
		}
		h.Store.Erase(plid)
	}

	g, err := store.NewGame(h.Store.GamesDir, plid, maxTime, mind.Debug, secret)
	if err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RDB", "ERR"))
	}
	h.Store.Insert(g)
	return []byte(codec.FormatLine("RDB", "OK"))
}

// TRY — Submit Guess (spec §4.6 "TRY").
func (h *Handlers) TRY(args []string) []byte {
	if len(args) != 6 {
		return []byte(codec.FormatLine("RTR", "ERR"))
	}
	plid := args[0]
	guess, okCode := parseCode(args[1:5])
	n, err := strconv.Atoi(args[5])
	if err != nil || !validate.PLID(plid) || !okCode {
		return []byte(codec.FormatLine("RTR", "ERR"))
	}

	g, timedOut := h.Store.Sweep(plid, time.Now())
	if g == nil {
		return []byte(codec.FormatLine("RTR", "NOK"))
	}
	if timedOut {
		return []byte(codec.FormatLine("RTR", "ETM", g.Secret[0].String(), g.Secret[1].String(), g.Secret[2].String(), g.Secret[3].String()))
	}

	if n == len(g.Trials) {
		if len(g.Trials) == 0 || !g.Trials[len(g.Trials)-1].Equal(guess) {
			return []byte(codec.FormatLine("RTR", "INV"))
		}
		nB, nW := match.Score(guess, g.Secret)
		return []byte(codec.FormatLine("RTR", "OK", strconv.Itoa(n), strconv.Itoa(nB), strconv.Itoa(nW)))
	}
	if !validate.TrialNumber(n, len(g.Trials)) {
		return []byte(codec.FormatLine("RTR", "INV"))
	}

	if g.HasDuplicate(guess) {
		return []byte(codec.FormatLine("RTR", "DUP"))
	}

	nB, nW := match.Score(guess, g.Secret)
	if err := g.AppendTrial(guess, nB, nW); err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RTR", "ERR"))
	}

	if nB == 4 {
		if err := h.Store.FinalizeAndErase(g, mind.Win); err != nil {
			mind.Log.Print(err)
		}
		return []byte(codec.FormatLine("RTR", "OK", strconv.Itoa(n), "4", "0"))
	}
	if len(g.Trials) == mind.MaxAttempts {
		if err := h.Store.FinalizeAndErase(g, mind.Fail); err != nil {
			mind.Log.Print(err)
		}
		return []byte(codec.FormatLine("RTR", "ENT", g.Secret[0].String(), g.Secret[1].String(), g.Secret[2].String(), g.Secret[3].String()))
	}

	return []byte(codec.FormatLine("RTR", "OK", strconv.Itoa(n), strconv.Itoa(nB), strconv.Itoa(nW)))
}

// QUT — Quit (spec §4.6 "QUT").
func (h *Handlers) QUT(args []string) []byte {
	if len(args) != 1 {
		return []byte(codec.FormatLine("RQT", "ERR"))
	}
	plid := args[0]
	if !validate.PLID(plid) {
		return []byte(codec.FormatLine("RQT", "ERR"))
	}

	g, timedOut := h.Store.Sweep(plid, time.Now())
	if g == nil || timedOut {
		return []byte(codec.FormatLine("RQT", "NOK"))
	}

	secret := g.Secret
	if err := h.Store.FinalizeAndErase(g, mind.Quit); err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RQT", "ERR"))
	}
	return []byte(codec.FormatLine("RQT", "OK", secret[0].String(), secret[1].String(), secret[2].String(), secret[3].String()))
}

// STR — Show Trials (spec §4.6 "STR"). TCP-only; carries a file payload.
func (h *Handlers) STR(args []string) []byte {
	if len(args) != 1 || !validate.PLID(args[0]) {
		return []byte(codec.FormatLine("RST", "NOK"))
	}
	plid := args[0]
	filename := "STATE_" + plid + ".txt"

	g, timedOut := h.Store.Sweep(plid, time.Now())
	if g != nil && !timedOut {
		content, err := os.ReadFile(store.GamePath(h.Store.GamesDir, plid))
		if err != nil {
			mind.Log.Print(err)
			return []byte(codec.FormatLine("RST", "NOK"))
		}
		return codec.FormatFileFrame([]string{"RST", "ACT"}, filename, content)
	}

	path, err := h.Store.LastArchive(plid)
	if err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RST", "NOK"))
	}
	if path == "" {
		return []byte(codec.FormatLine("RST", "NOK"))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RST", "NOK"))
	}
	content = append(content, outcomeLine(path, content)...)
	return codec.FormatFileFrame([]string{"RST", "FIN"}, filename, content)
}

// outcomeLine builds the human-readable trailer appended to a finished
// game's transcript: the end code carried by the archive filename, paired
// with the elapsed-seconds figure from the mirror file's own trailer.
func outcomeLine(path string, content []byte) []byte {
	base := strings.TrimSuffix(filepath.Base(path), ".txt")
	parts := strings.Split(base, "_")
	end := mind.EndCode(parts[len(parts)-1][0])

	elapsed := "?"
	lines := bytes.Split(bytes.TrimRight(content, "\n"), []byte("\n"))
	if len(lines) > 0 {
		fields := strings.Fields(string(lines[len(lines)-1]))
		if len(fields) > 0 {
			elapsed = fields[len(fields)-1]
		}
	}
	return []byte(fmt.Sprintf("%s %s\n", end, elapsed))
}

// SSB — Scoreboard (spec §4.6 "SSB"). TCP-only; carries a file payload.
func (h *Handlers) SSB() []byte {
	entries, err := scoreboard.Top10(h.Store.ScoresDir)
	if err != nil {
		mind.Log.Print(err)
		return []byte(codec.FormatLine("RSS", "EMPTY"))
	}
	if len(entries) == 0 {
		return []byte(codec.FormatLine("RSS", "EMPTY"))
	}
	content := scoreboard.Render(entries)
	return codec.FormatFileFrame([]string{"RSS", "OK"}, "TOPSCORES.txt", content)
}
