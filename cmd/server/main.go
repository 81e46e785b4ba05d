// Entry point
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

package main

import (
	"fmt"
	"log"

	"go-mind"
	"go-mind/config"
	"go-mind/handlers"
	"go-mind/index"
	"go-mind/listener"
	"go-mind/store"
	"go-mind/webui"
)

func main() {
	c := config.Load()

	s := store.New(c.GamesDir, c.ScoresDir)
	h := handlers.New(s)

	l := listener.New(fmt.Sprintf(":%d", c.Port), h, c.Verbose())

	// The store only ever calls one finalize hook; compose whichever of
	// the index and dashboard are enabled into a single function so both
	// stay in sync without the store knowing either exists.
	var hooks []store.FinalizeHook

	var ix *index.Index
	if c.IndexEnabled {
		var err error
		ix, err = index.New(c.IndexFile)
		if err != nil {
			log.Fatal(err)
		}
		hooks = append(hooks, ix.OnFinalize)
	}

	var dash *webui.Dashboard
	if c.WebEnabled {
		dash = webui.New(c.WebAddr, s, ix)
		hooks = append(hooks, dash.NotifyFinalize)
	}

	s.OnFinalize(func(g *store.Game, end mind.EndCode) {
		for _, hook := range hooks {
			hook(g, end)
		}
	})

	c.Register(s)
	c.Register(l)
	if ix != nil {
		c.Register(ix)
	}
	if dash != nil {
		c.Register(dash)
	}

	c.Start()
}
