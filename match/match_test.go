// Match evaluator tests
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

package match

import (
	"math/rand"
	"testing"

	"go-mind"
)

func TestScore(t *testing.T) {
	for i, test := range []struct {
		guess, secret mind.Code
		nB, nW        int
	}{
		{
			guess:  mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow},
			secret: mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow},
			nB:     4, nW: 0,
		}, {
			guess:  mind.Code{mind.Red, mind.Red, mind.Red, mind.Red},
			secret: mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow},
			nB:     1, nW: 0,
		}, {
			guess:  mind.Code{mind.Green, mind.Red, mind.Yellow, mind.Blue},
			secret: mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow},
			nB:     0, nW: 4,
		}, {
			guess:  mind.Code{mind.Red, mind.Red, mind.Blue, mind.Purple},
			secret: mind.Code{mind.Red, mind.Blue, mind.Blue, mind.Green},
			nB:     2, nW: 0,
		}, {
			guess:  mind.Code{mind.Orange, mind.Orange, mind.Orange, mind.Orange},
			secret: mind.Code{mind.Red, mind.Green, mind.Blue, mind.Yellow},
			nB:     0, nW: 0,
		},
	} {
		nB, nW := Score(test.guess, test.secret)
		if nB != test.nB || nW != test.nW {
			t.Errorf("test %d: Score(%s, %s) = (%d, %d), want (%d, %d)",
				i, test.guess, test.secret, nB, nW, test.nB, test.nW)
		}
	}
}

func randomCode(rng *rand.Rand) mind.Code {
	var c mind.Code
	for i := range c {
		c[i] = mind.Colors[rng.Intn(len(mind.Colors))]
	}
	return c
}

func TestScoreInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		guess := randomCode(rng)
		secret := randomCode(rng)

		nB, nW := Score(guess, secret)
		if nB+nW > 4 || nB+nW < 0 {
			t.Fatalf("guess=%s secret=%s: nB+nW = %d out of range", guess, secret, nB+nW)
		}
		if (nB == 4) != guess.Equal(secret) {
			t.Fatalf("guess=%s secret=%s: nB==4 iff equal violated", guess, secret)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	guess := mind.Code{mind.Red, mind.Red, mind.Green, mind.Blue}
	secret := mind.Code{mind.Green, mind.Red, mind.Blue, mind.Blue}

	b1, w1 := Score(guess, secret)
	b2, w2 := Score(guess, secret)
	if b1 != b2 || w1 != w2 {
		t.Fatalf("non-deterministic score: (%d,%d) vs (%d,%d)", b1, w1, b2, w2)
	}
}
