// Listener loop — dual UDP+TCP multiplex and verb dispatch
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

// Package listener implements C8: a UDP socket and a TCP listening socket
// bound to the same port, dispatching each request line to the matching
// handler from the handlers package.
package listener

import (
	"bufio"
	"log"
	"net"
	"strings"

	"go-mind/codec"
	"go-mind/handlers"
)

// transport identifies which socket a request arrived on. STR and SSB are
// TCP-only; every other verb is UDP-only (spec §4.8).
type transport int

const (
	udp transport = iota
	tcp
)

type route struct {
	transport transport
	call      func(h *handlers.Handlers, args []string) []byte
}

var dispatchTable = map[string]route{
	"SNG": {udp, func(h *handlers.Handlers, a []string) []byte { return h.SNG(a) }},
	"TRY": {udp, func(h *handlers.Handlers, a []string) []byte { return h.TRY(a) }},
	"QUT": {udp, func(h *handlers.Handlers, a []string) []byte { return h.QUT(a) }},
	"DBG": {udp, func(h *handlers.Handlers, a []string) []byte { return h.DBG(a) }},
	"STR": {tcp, func(h *handlers.Handlers, a []string) []byte { return h.STR(a) }},
	"SSB": {tcp, func(h *handlers.Handlers, _ []string) []byte { return h.SSB() }},
}

// Listener owns the two listening sockets. It satisfies the Manager
// interface (String/Start/Shutdown) used throughout the rest of the
// server's lifecycle wiring.
type Listener struct {
	Addr     string
	Handlers *handlers.Handlers
	Verbose  *log.Logger

	udpConn *net.UDPConn
	tcpLis  net.Listener
}

func New(addr string, h *handlers.Handlers, verbose *log.Logger) *Listener {
	return &Listener{Addr: addr, Handlers: h, Verbose: verbose}
}

func (l *Listener) String() string { return "Listener " + l.Addr }

// LocalAddr reports the address both sockets are bound to, or "" before
// Start has finished binding. Callers that need to know the actual port
// (e.g. when Addr ends in ":0") should poll this after calling go l.Start().
func (l *Listener) LocalAddr() string {
	if l.udpConn == nil {
		return ""
	}
	return l.udpConn.LocalAddr().String()
}

// Start binds both sockets, spawns the TCP accept loop, and then runs the
// UDP receive loop in the calling goroutine until Shutdown closes the
// sockets. It satisfies config.Manager, so the caller runs it as
// `go l.Start()` and relies on Shutdown to unblock it. A bind failure is
// fatal: the server cannot serve without its sockets, so Start aborts the
// process rather than returning silently.
func (l *Listener) Start() {
	if err := l.bind(); err != nil {
		log.Fatal(err)
	}

	go l.serveTCP()
	l.serveUDP()
}

// bind opens both sockets, exposed separately so tests can bind and poll
// l.udpConn without running the blocking receive loop.
func (l *Listener) bind() error {
	udpAddr, err := net.ResolveUDPAddr("udp", l.Addr)
	if err != nil {
		return err
	}
	l.udpConn, err = net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	// Bind TCP to the same port UDP actually got, so callers may pass a
	// ":0" address (as tests do) and have both sockets land together.
	l.tcpLis, err = net.Listen("tcp", l.udpConn.LocalAddr().String())
	if err != nil {
		l.udpConn.Close()
		return err
	}
	return nil
}

func (l *Listener) Shutdown() {
	if l.udpConn != nil {
		l.udpConn.Close()
	}
	if l.tcpLis != nil {
		l.tcpLis.Close()
	}
}

// serveUDP is strictly serial: one datagram in, one datagram out, per
// spec §4.8's scheduling model.
func (l *Listener) serveUDP() {
	buf := make([]byte, 1500)
	for {
		n, addr, err := l.udpConn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		line := strings.TrimRight(string(buf[:n]), "\r\n")
		resp := l.handle(line, udp, addr.String())
		l.udpConn.WriteToUDP(resp, addr)
	}
}

// serveTCP accepts connections and hands each to its own goroutine so a
// slow client cannot stall UDP service. Every mutation those goroutines
// trigger still funnels through the store's single dispatcher goroutine.
func (l *Listener) serveTCP() {
	for {
		conn, err := l.tcpLis.Accept()
		if err != nil {
			return
		}
		go l.handleTCP(conn)
	}
}

func (l *Listener) handleTCP(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	resp := l.handle(line, tcp, conn.RemoteAddr().String())
	conn.Write(resp)
}

func (l *Listener) handle(line string, tr transport, peer string) []byte {
	req, err := codec.ParseRequest(line)
	if err != nil {
		return []byte(codec.FormatLine("ERR"))
	}

	r, ok := dispatchTable[req.Verb]
	if !ok || r.transport != tr {
		l.logRequest(req, "", tr, peer)
		return []byte(codec.FormatLine("ERR"))
	}

	plid := ""
	if len(req.Args) > 0 {
		plid = req.Args[0]
	}
	l.logRequest(req, plid, tr, peer)
	return r.call(l.Handlers, req.Args)
}

func (l *Listener) logRequest(req *codec.Request, plid string, tr transport, peer string) {
	if l.Verbose == nil {
		return
	}
	name := "udp"
	if tr == tcp {
		name = "tcp"
	}
	l.Verbose.Printf("%s plid=%s transport=%s peer=%s", req.Verb, plid, name, peer)
}
