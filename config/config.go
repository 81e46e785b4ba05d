// Configuration specification and manager registry
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

// Package config loads server.toml, exposes the resulting settings, and
// runs the top-level Manager registry every long-lived component
// (listener, store, index, web dashboard) registers against.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go-mind"
)

// file is the on-disk shape of server.toml.
type file struct {
	Debug bool `toml:"debug"`
	Proto struct {
		Port uint `toml:"port"`
	} `toml:"proto"`
	Store struct {
		GamesDir  string `toml:"games_dir"`
		ScoresDir string `toml:"scores_dir"`
	} `toml:"store"`
	Index struct {
		Enabled bool   `toml:"enabled"`
		File    string `toml:"file"`
	} `toml:"index"`
	Web struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"web"`
}

// Manager is any long-lived component the config registry starts and
// stops together.
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

// Conf is the public, resolved configuration.
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger

	Port      uint
	GamesDir  string
	ScoresDir string

	IndexEnabled bool
	IndexFile    string

	WebEnabled bool
	WebAddr    string

	debugEnabled bool
	man          []Manager
	run          bool
}

var defaultConf = Conf{
	Log:   log.Default(),
	Debug: mind.Log,

	Port:      58030,
	GamesDir:  "games",
	ScoresDir: "scores",

	IndexEnabled: true,
	IndexFile:    "index.db",

	WebEnabled: false,
	WebAddr:    ":8080",
}

// Register adds m to the set of managers Start/Shutdown together. Must be
// called before Start.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("config: late register: %#v", m))
	}
	c.man = append(c.man, m)
}

// Start launches every registered manager, then blocks until SIGINT is
// received, at which point it shuts every manager back down in order.
func (c *Conf) Start() {
	for _, m := range c.man {
		c.Debug.Printf("starting %s", m)
		go m.Start()
	}
	c.run = true

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	<-intr
	c.Debug.Println("caught interrupt")

	c.Debug.Println("waiting for managers to shut down")
	for _, m := range c.man {
		c.Debug.Printf("shutting %s down", m)
		m.Shutdown()
	}
}

// Verbose returns the logger to use for per-request logging, or nil if
// -v/debug was not enabled.
func (c *Conf) Verbose() *log.Logger {
	if !c.debugEnabled {
		return nil
	}
	return c.Log
}

// Dump serialises c back into TOML, the form -dump-config writes to
// standard output.
func (c *Conf) Dump(w io.Writer) error {
	var data file
	data.Debug = c.debugEnabled
	data.Proto.Port = c.Port
	data.Store.GamesDir = c.GamesDir
	data.Store.ScoresDir = c.ScoresDir
	data.Index.Enabled = c.IndexEnabled
	data.Index.File = c.IndexFile
	data.Web.Enabled = c.WebEnabled
	data.Web.Addr = c.WebAddr

	return dumpTOML(w, data)
}
