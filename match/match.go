// Match evaluator — black/white peg scoring
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

// Package match computes the (nB, nW) score of a guess against a secret,
// per spec §4.3.
package match

import "go-mind"

// Score counts black pegs (right color, right position) and white pegs
// (right color, wrong position) of guess against secret. Positions
// already counted as black are never reconsidered for white; the
// remaining white match is greedy left-to-right, which is sufficient
// because only the total nW (not which guess position it came from)
// is ever reported.
func Score(guess, secret mind.Code) (nB, nW int) {
	var usedGuess, usedSecret [4]bool

	for i := 0; i < 4; i++ {
		if guess[i] == secret[i] {
			nB++
			usedGuess[i] = true
			usedSecret[i] = true
		}
	}

	for i := 0; i < 4; i++ {
		if usedGuess[i] {
			continue
		}
		for j := 0; j < 4; j++ {
			if usedSecret[j] {
				continue
			}
			if guess[i] == secret[j] {
				nW++
				usedSecret[j] = true
				break
			}
		}
	}

	return nB, nW
}
