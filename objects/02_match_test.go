// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/02_match_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-12 20:30:02 krylon>

package objects

import "testing"

func TestURLMatch(t *testing.T) {
	type testCase struct {
		a, b      string
		matchPath bool
		expect    bool
	}

	var cases = []testCase{
		testCase{"https://www.example.com/news", "https://www.example.com/", false, true},
		testCase{"https://www.example.com/news", "https://www.example.com/", true, false},
		testCase{"https://www.example.com/news?id=23", "https://www.example.com/news", true, true},
		testCase{"https://www.example.com/", "https://example.com/", false, false},
		testCase{"http://www.example.com/", "https://www.example.com/", false, true},
		testCase{"https://www.example.com:8080/x", "https://www.example.com/y", false, true},
	}

	for _, c := range cases {
		if res := URLMatch(c.a, c.b, c.matchPath); res != c.expect {
			t.Errorf("URLMatch(%q, %q, %t) == %t (expected %t)",
				c.a,
				c.b,
				c.matchPath,
				res,
				c.expect)
		}
	}
} // func TestURLMatch(t *testing.T)
