// Scoreboard — top-10 ranking over the SCORES directory
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

// Package scoreboard implements C7: ranking the SCORES directory into a
// top-10 report. It never writes; only store.Game.writeScoreFile does.
package scoreboard

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one parsed score file.
type Entry struct {
	Score    int
	PLID     string
	Code     string
	Trials   int
	Mode     string
	Filename string
}

// parseScoreFile reads and decodes one score file. Its single content line
// has the shape written by store.Game.writeScoreFile: "%03d %s %s %d %s".
func parseScoreFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	fields := strings.Fields(string(data))
	if len(fields) != 5 {
		return Entry{}, fmt.Errorf("scoreboard: malformed score file %s", path)
	}

	var e Entry
	e.Filename = filepath.Base(path)
	if _, err := fmt.Sscanf(fields[0], "%d", &e.Score); err != nil {
		return Entry{}, err
	}
	e.PLID = fields[1]
	e.Code = fields[2]
	if _, err := fmt.Sscanf(fields[3], "%d", &e.Trials); err != nil {
		return Entry{}, err
	}
	e.Mode = fields[4]
	return e, nil
}

// Top10 scans scoresDir and returns up to the ten highest-scoring entries,
// highest first. Ties break on filename (the timestamp embedded in a score
// file's name), newest first. Readers never lock the directory: a file
// that disappears or fails to parse mid-scan is skipped rather than
// treated as an error, since a concurrent writer may be mid-rename.
func Top10(scoresDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(scoresDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		e, err := parseScoreFile(filepath.Join(scoresDir, de.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}

	// A score file's name ends in DDMMYYYY_HHMMSS; reorder that into
	// YYYYMMDDHHMMSS so a newer game compares greater.
	stamp := func(name string) string {
		parts := strings.Split(strings.TrimSuffix(name, ".txt"), "_")
		if len(parts) < 2 || len(parts[len(parts)-2]) != 8 {
			return name
		}
		d := parts[len(parts)-2]
		return d[4:] + d[2:4] + d[:2] + parts[len(parts)-1]
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if si, sj := stamp(entries[i].Filename), stamp(entries[j].Filename); si != sj {
			return si > sj
		}
		return entries[i].Filename > entries[j].Filename
	})

	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries, nil
}

// Render formats entries as the fixed-width report shipped in an RSS OK
// file payload.
func Render(entries []Entry) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-4s %-6s %-6s %-4s %-5s %s\n", "RANK", "SCORE", "PLID", "TRY", "MODE", "CODE")
	for i, e := range entries {
		fmt.Fprintf(&buf, "%-4d %-6d %-6s %-4d %-5s %s\n", i+1, e.Score, e.PLID, e.Trials, e.Mode, e.Code)
	}
	return buf.Bytes()
}
