// Listener loop tests
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

package listener

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"go-mind/handlers"
	"go-mind/store"
)

func startTestListener(t *testing.T) *Listener {
	t.Helper()
	s := store.New(t.TempDir(), t.TempDir())
	go s.Start()
	t.Cleanup(s.Shutdown)

	l := New("127.0.0.1:0", handlers.New(s), nil)
	started := make(chan struct{})
	go func() {
		// Start blocks serving UDP; give it a moment to bind before
		// tests dial in.
		go func() {
			for l.udpConn == nil {
				time.Sleep(time.Millisecond)
			}
			close(started)
		}()
		l.Start()
	}()
	<-started
	t.Cleanup(l.Shutdown)
	return l
}

func udpRoundTrip(t *testing.T, addr, line string) string {
	t.Helper()
	conn, err := net.Dial("udp", addr)
	if err != nil {
		t.Fatalf("Dial udp: %s", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("Write: %s", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1500)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	return strings.TrimRight(string(buf[:n]), "\n")
}

func tcpRoundTrip(t *testing.T, addr, line string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial tcp: %s", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("Write: %s", err)
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString: %s", err)
	}
	return strings.TrimRight(resp, "\n")
}

func TestListenerSNGOverUDP(t *testing.T) {
	l := startTestListener(t)
	addr := l.udpConn.LocalAddr().String()

	resp := udpRoundTrip(t, addr, "SNG 123456 60")
	if resp != "RSG OK" {
		t.Fatalf("SNG over UDP = %q, want %q", resp, "RSG OK")
	}
}

func TestListenerRejectsTCPOnlyVerbOverUDP(t *testing.T) {
	l := startTestListener(t)
	addr := l.udpConn.LocalAddr().String()

	resp := udpRoundTrip(t, addr, "SSB")
	if resp != "ERR" {
		t.Fatalf("SSB over UDP = %q, want ERR", resp)
	}
}

func TestListenerRejectsUDPOnlyVerbOverTCP(t *testing.T) {
	l := startTestListener(t)
	addr := l.udpConn.LocalAddr().String()

	resp := tcpRoundTrip(t, addr, "SNG 123456 60")
	if resp != "ERR" {
		t.Fatalf("SNG over TCP = %q, want ERR", resp)
	}
}

func TestListenerSSBOverTCP(t *testing.T) {
	l := startTestListener(t)
	addr := l.udpConn.LocalAddr().String()

	resp := tcpRoundTrip(t, addr, "SSB")
	if resp != "RSS EMPTY" {
		t.Fatalf("SSB over TCP = %q, want %q", resp, "RSS EMPTY")
	}
}

func TestListenerUnknownVerbIsErr(t *testing.T) {
	l := startTestListener(t)
	addr := l.udpConn.LocalAddr().String()

	resp := udpRoundTrip(t, addr, "XYZ 123456")
	if resp != "ERR" {
		t.Fatalf("unknown verb = %q, want ERR", resp)
	}
}
