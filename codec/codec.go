// Wire codec — tokenizes and formats the ASCII line/file protocol
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

// Package codec implements the ASCII, space-separated, newline-terminated
// request/response protocol described in spec §6.1. It only tokenizes and
// formats; it knows nothing about game state.
package codec

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// ErrMalformed is returned whenever a frame cannot be tokenized at all.
var ErrMalformed = errors.New("codec: malformed frame")

// Request is a parsed request frame: a verb plus its positional
// arguments, everything past the verb split on whitespace.
type Request struct {
	Verb string
	Args []string
}

// ParseRequest splits a single line (newline already stripped by the
// caller) into a verb and its arguments.
func ParseRequest(line string) (*Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrMalformed
	}
	return &Request{Verb: fields[0], Args: fields[1:]}, nil
}

// Arg returns the i'th argument, or "" if it is missing.
func (r *Request) Arg(i int) string {
	if i < 0 || i >= len(r.Args) {
		return ""
	}
	return r.Args[i]
}

// FormatLine joins tokens with single spaces and terminates the frame
// with a newline — the canonical form for every non-file response.
func FormatLine(tokens ...string) string {
	return strings.Join(tokens, " ") + "\n"
}

// FormatFileFrame builds a response frame that carries a file payload:
// the header tokens, followed by the filename, the declared byte size of
// content, and the raw bytes themselves, per spec §4.1 and §6.1.
func FormatFileFrame(header []string, filename string, content []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, " "))
	buf.WriteByte(' ')
	buf.WriteString(filename)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(len(content)))
	buf.WriteByte(' ')
	buf.Write(content)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// FileFrame is a response re-split at the third token, isolating the
// filename, the declared size, and the raw trailing bytes.
type FileFrame struct {
	Header   []string
	Filename string
	Size     int
	Content  []byte
}

// ParseFileFrame re-splits RAW (a frame without its trailing newline) at
// the third token: verb, status, filename, size, then exactly Size raw
// bytes. HeaderLen is how many leading tokens (verb + status words)
// precede the filename — callers know this from the verb they dispatched.
func ParseFileFrame(raw []byte, headerLen int) (*FileFrame, error) {
	var (
		tokens []string
		pos    int
	)
	for len(tokens) < headerLen+2 {
		start := pos
		for start < len(raw) && raw[start] == ' ' {
			start++
		}
		end := start
		for end < len(raw) && raw[end] != ' ' {
			end++
		}
		if start == end {
			return nil, ErrMalformed
		}
		tokens = append(tokens, string(raw[start:end]))
		pos = end + 1
		if pos > len(raw) {
			return nil, ErrMalformed
		}
	}

	size, err := strconv.Atoi(tokens[headerLen+1])
	if err != nil || size < 0 {
		return nil, ErrMalformed
	}
	if pos+size > len(raw) {
		return nil, ErrMalformed
	}

	return &FileFrame{
		Header:   tokens[:headerLen],
		Filename: tokens[headerLen],
		Size:     size,
		Content:  raw[pos : pos+size],
	}, nil
}
