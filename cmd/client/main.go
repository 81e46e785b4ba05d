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
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

var (
	host = flag.String("n", "localhost", "Game server hostname or address")
	port = flag.Uint("p", 58030, "Game server port")
)

func main() {
	flag.Parse()

	cli := &Client{Addr: fmt.Sprintf("%s:%d", *host, *port)}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		if !cli.Dispatch(fields[0], fields[1:]) {
			break
		}
		fmt.Print("> ")
	}
}
