// Validators — player-id, color, time, and trial-number checks
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

// Package validate holds the protocol-level checks of spec §4.2. A
// failed validator always means the caller should surface a verb's ERR
// response and leave state untouched.
package validate

import "go-mind"

// PLID reports whether s is exactly 6 decimal digits.
func PLID(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Color reports whether s names one of the six valid pegs.
func Color(s string) bool {
	if len(s) != 1 {
		return false
	}
	return mind.Color(s[0]).Valid()
}

// Time reports whether t is a legal maxTime (1 ≤ t ≤ 600).
func Time(t int) bool {
	return t >= mind.MinTime && t <= mind.MaxTime
}

// TrialNumber reports whether n is the expected next trial number for a
// game that has already accepted `played` trials. The idempotent-resend
// case (n equal to the last accepted trial) is handled by the handler
// layer, not here, since it requires comparing the guess itself.
func TrialNumber(n, played int) bool {
	return n == played+1
}
