// Validator tests
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

package validate

import "testing"

func TestPLID(t *testing.T) {
	for _, test := range []struct {
		in string
		ok bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
	} {
		if got := PLID(test.in); got != test.ok {
			t.Errorf("PLID(%q) = %v, want %v", test.in, got, test.ok)
		}
	}
}

func TestColor(t *testing.T) {
	for _, test := range []struct {
		in string
		ok bool
	}{
		{"R", true}, {"G", true}, {"B", true},
		{"Y", true}, {"O", true}, {"P", true},
		{"X", false}, {"r", false}, {"", false}, {"RR", false},
	} {
		if got := Color(test.in); got != test.ok {
			t.Errorf("Color(%q) = %v, want %v", test.in, got, test.ok)
		}
	}
}

func TestTime(t *testing.T) {
	for _, test := range []struct {
		in int
		ok bool
	}{
		{0, false}, {1, true}, {600, true}, {601, false}, {-5, false}, {300, true},
	} {
		if got := Time(test.in); got != test.ok {
			t.Errorf("Time(%d) = %v, want %v", test.in, got, test.ok)
		}
	}
}

func TestTrialNumber(t *testing.T) {
	for _, test := range []struct {
		n, played int
		ok        bool
	}{
		{1, 0, true},
		{2, 0, false},
		{2, 1, true},
		{1, 1, false},
	} {
		if got := TrialNumber(test.n, test.played); got != test.ok {
			t.Errorf("TrialNumber(%d, %d) = %v, want %v", test.n, test.played, got, test.ok)
		}
	}
}
