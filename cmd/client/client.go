// Protocol handling
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
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-mind/codec"
)

const udpTimeout = 5 * time.Second

// Client keeps the session state the REPL needs across commands: which
// player it is currently playing as and how many trials have been accepted.
type Client struct {
	Addr  string
	PLID  string
	trial int
}

// Dispatch runs one REPL command and reports whether the REPL should keep
// reading. Only "exit" returns false.
func (c *Client) Dispatch(cmd string, args []string) bool {
	switch cmd {
	case "start":
		c.start(args)
	case "try":
		c.try(args)
	case "show_trials", "st":
		c.showTrials()
	case "scoreboard", "sb":
		c.scoreboard()
	case "quit":
		c.quit()
	case "exit":
		c.quit()
		return false
	case "debug":
		c.debug(args)
	default:
		fmt.Println("Unknown command.")
	}
	return true
}

func (c *Client) start(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: start <PLID> <max_playtime>")
		return
	}
	resp, err := c.sendUDP(codec.FormatLine("SNG", args[0], args[1]))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req, _ := codec.ParseRequest(resp)
	switch req.Arg(0) {
	case "OK":
		c.PLID = args[0]
		c.trial = 0
		fmt.Printf("New game started (max %s sec)\n", args[1])
	case "NOK":
		fmt.Println("Failed to start game: player has an ongoing game.")
	default:
		fmt.Println("Failed to start game: invalid arguments.")
	}
}

func (c *Client) debug(args []string) {
	if len(args) != 6 {
		fmt.Println("Usage: debug <PLID> <max_playtime> <C1> <C2> <C3> <C4>")
		return
	}
	resp, err := c.sendUDP(codec.FormatLine(append([]string{"DBG"}, args...)...))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req, _ := codec.ParseRequest(resp)
	switch req.Arg(0) {
	case "OK":
		c.PLID = args[0]
		c.trial = 0
		fmt.Printf("Debug game started (max %s sec), secret key %s %s %s %s\n",
			args[1], args[2], args[3], args[4], args[5])
	case "NOK":
		fmt.Println("Failed to start debug game: player has an ongoing game.")
	default:
		fmt.Println("Failed to start debug game: invalid request.")
	}
}

func (c *Client) try(args []string) {
	if c.PLID == "" {
		fmt.Println("No game in progress: run start first.")
		return
	}
	if len(args) != 4 {
		fmt.Println("Usage: try <C1> <C2> <C3> <C4>")
		return
	}

	n := c.trial + 1
	resp, err := c.sendUDP(codec.FormatLine("TRY", c.PLID, args[0], args[1], args[2], args[3], itoa(n)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req, _ := codec.ParseRequest(resp)
	switch req.Arg(0) {
	case "OK":
		c.trial = n
		fmt.Printf("Trial %s nB: %s  nW: %s\n", req.Arg(1), req.Arg(2), req.Arg(3))
		if req.Arg(2) == "4" {
			fmt.Println("Congratulations! You've guessed the secret key.")
			c.PLID = ""
		}
	case "DUP":
		fmt.Println("Duplicated trial.")
	case "INV":
		fmt.Println("Invalid trial number or guess.")
	case "NOK":
		fmt.Println("No ongoing game for this player.")
		c.PLID = ""
	case "ETM":
		fmt.Printf("Maximum play time exceeded. The secret key was: %s %s %s %s\n",
			req.Arg(1), req.Arg(2), req.Arg(3), req.Arg(4))
		c.PLID = ""
	case "ENT":
		fmt.Printf("No more attempts available. The secret key was: %s %s %s %s\n",
			req.Arg(1), req.Arg(2), req.Arg(3), req.Arg(4))
		c.PLID = ""
	default:
		fmt.Println("Error in trial request.")
	}
}

func (c *Client) quit() {
	plid := c.PLID
	if plid == "" {
		fmt.Println("No game in progress.")
		return
	}
	resp, err := c.sendUDP(codec.FormatLine("QUT", plid))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req, _ := codec.ParseRequest(resp)
	switch req.Arg(0) {
	case "OK":
		fmt.Printf("Game terminated. The secret key was: %s %s %s %s\n",
			req.Arg(1), req.Arg(2), req.Arg(3), req.Arg(4))
	default:
		fmt.Println("No ongoing game to terminate.")
	}
	c.PLID = ""
}

func (c *Client) showTrials() {
	if c.PLID == "" {
		fmt.Println("Player ID not set: run start first.")
		return
	}
	raw, err := c.sendTCP(codec.FormatLine("STR", c.PLID))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if string(raw) == "RST NOK" {
		fmt.Println("No ongoing or finished game for this player.")
		return
	}
	c.receiveFile(raw, 2, "game_history")
}

func (c *Client) scoreboard() {
	raw, err := c.sendTCP(codec.FormatLine("SSB"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if string(raw) == "RSS EMPTY" {
		fmt.Println("Scoreboard is empty.")
		return
	}
	c.receiveFile(raw, 2, "top_scores")
}

// receiveFile re-splits a file-carrying response, writes it under dir in
// the working directory, and echoes it to standard output.
func (c *Client) receiveFile(raw []byte, headerLen int, dir string) {
	frame, err := codec.ParseFileFrame(raw, headerLen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "malformed response:", err)
		return
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		fmt.Fprintln(os.Stderr, err)
	} else if err := os.WriteFile(filepath.Join(dir, frame.Filename), frame.Content, 0666); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	fmt.Printf("Received %s (%d bytes)\n", frame.Filename, frame.Size)
	os.Stdout.Write(frame.Content)
}

func (c *Client) sendUDP(line string) (string, error) {
	conn, err := net.Dial("udp", c.Addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(udpTimeout))
	if _, err := conn.Write([]byte(line)); err != nil {
		return "", err
	}

	buf := make([]byte, 1500)
	n, err := conn.Read(buf)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf[:n]), "\r\n"), nil
}

// sendTCP writes line and reads the response until the server closes the
// connection. A file-carrying response may itself contain newlines (a
// multi-line game transcript), so the response is read to EOF rather than
// to the first '\n' — the server writes exactly one response per
// connection and closes immediately after (listener.handleTCP).
func (c *Client) sendTCP(line string) ([]byte, error) {
	conn, err := net.Dial("tcp", c.Addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line)); err != nil {
		return nil, err
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, err
	}
	if n := len(resp); n > 0 && resp[n-1] == '\n' {
		resp = resp[:n-1]
	}
	return resp, nil
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
