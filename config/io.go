// Configuration loading, flag parsing, and dumping
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

package config

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

const defconf = "server.toml"

var (
	cfile   = defconf
	port    uint
	verbose bool
	dump    bool
	www     string
)

func init() {
	flag.UintVar(&port, "p", 0, "Port to listen on (overrides the config file)")
	flag.BoolVar(&verbose, "v", false, "Log one line per request")
	flag.BoolVar(&dump, "dump-config", false, "Dump the resolved configuration to standard output and exit")
	flag.StringVar(&cfile, "conf", defconf, "Path to a server.toml configuration file")
	flag.StringVar(&www, "www", "", "Enable the web dashboard on the given address (overrides the config file)")
}

func dumpTOML(w io.Writer, data file) error {
	return toml.NewEncoder(w).Encode(data)
}

func load(r io.Reader) (*Conf, error) {
	var data file
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConf
	if data.Proto.Port != 0 {
		c.Port = data.Proto.Port
	}
	if data.Store.GamesDir != "" {
		c.GamesDir = data.Store.GamesDir
	}
	if data.Store.ScoresDir != "" {
		c.ScoresDir = data.Store.ScoresDir
	}
	c.IndexEnabled = data.Index.Enabled
	if data.Index.File != "" {
		c.IndexFile = data.Index.File
	}
	c.WebEnabled = data.Web.Enabled
	if data.Web.Addr != "" {
		c.WebAddr = data.Web.Addr
	}
	c.debugEnabled = data.Debug
	return &c, nil
}

// Load parses CLI flags, reads -conf's file if present, and applies -p/-v
// overrides. -dump-config writes the resolved configuration and exits.
func Load() *Conf {
	flag.Parse()

	var c *Conf
	f, err := os.Open(cfile)
	switch {
	case err == nil:
		defer f.Close()
		c, err = load(f)
		if err != nil {
			log.Print(err)
			c = defaultConfCopy()
		}
	case os.IsNotExist(err):
		c = defaultConfCopy()
	default:
		log.Fatal(err)
	}

	if port != 0 {
		c.Port = port
	}
	if www != "" {
		c.WebEnabled = true
		c.WebAddr = www
	}
	if verbose {
		c.debugEnabled = true
	}
	if c.debugEnabled {
		c.Debug.SetOutput(os.Stderr)
	}

	if dump {
		if err := c.Dump(os.Stdout); err != nil {
			log.Fatal("failed to dump configuration: ", err)
		}
		os.Exit(0)
	}

	return c
}

func defaultConfCopy() *Conf {
	c := defaultConf
	return &c
}
