// Common domain types and constants
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

// Package mind holds the types shared by every layer of the Mastermind
// service: colors, codes, game modes, and the terminal end-codes a game
// can be archived under.
package mind

import "fmt"

// Color is one of the six pegs a code may be made of.
type Color byte

const (
	Red    Color = 'R'
	Green  Color = 'G'
	Blue   Color = 'B'
	Yellow Color = 'Y'
	Orange Color = 'O'
	Purple Color = 'P'
)

// Colors lists every valid peg color, in the order new secrets are drawn
// from.
var Colors = [...]Color{Red, Green, Blue, Yellow, Orange, Purple}

func (c Color) Valid() bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

func (c Color) String() string { return string(c) }

// Code is an ordered 4-peg guess or secret. Duplicate colors are allowed.
type Code [4]Color

func (c Code) String() string {
	return fmt.Sprintf("%c %c %c %c", c[0], c[1], c[2], c[3])
}

func (c Code) Equal(o Code) bool { return c == o }

// Mode distinguishes a Play game (server-chosen secret) from a Debug game
// (caller-supplied secret); the two are otherwise identical records.
type Mode byte

const (
	Play  Mode = 'P'
	Debug Mode = 'D'
)

func (m Mode) String() string {
	if m == Debug {
		return "DEBUG"
	}
	return "PLAY"
}

// EndCode records how a game reached a terminal state.
type EndCode byte

const (
	Win     EndCode = 'W'
	Fail    EndCode = 'F'
	Timeout EndCode = 'T'
	Quit    EndCode = 'Q'
)

func (e EndCode) String() string {
	switch e {
	case Win:
		return "WIN"
	case Fail:
		return "FAIL"
	case Timeout:
		return "TIMEOUT"
	case Quit:
		return "QUIT"
	default:
		panic(fmt.Sprintf("illegal end code: %c", byte(e)))
	}
}

// MaxAttempts is the number of trials a game allows before it is
// finalized as a failure.
const MaxAttempts = 8

// MinTime and MaxTime bound the maxTime a player may request for a game.
const (
	MinTime = 1
	MaxTime = 600
)
