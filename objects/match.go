// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/match.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-14 18:55:33 krylon>

package objects

import (
	"net/url"
	"strings"
)

// URLMatch tells if two URLs refer to the same page, by hostname, or
// by hostname and path if matchPath is set. The watcher uses it to
// recognize that its session already sits on a Config's target, in
// which case opening the URL again would be pointless (or, worse,
// cause a reload loop).
func URLMatch(rawA, rawB string, matchPath bool) bool {
	var (
		err  error
		a, b *url.URL
	)

	if a, err = url.Parse(rawA); err != nil {
		return matchSloppy(rawA, rawB)
	} else if b, err = url.Parse(rawB); err != nil {
		return matchSloppy(rawA, rawB)
	}

	if !matchPath {
		return a.Hostname() == b.Hostname()
	}

	return a.Hostname() == b.Hostname() && a.Path == b.Path
} // func URLMatch(rawA, rawB string, matchPath bool) bool

// matchSloppy compares two URLs that failed to parse, by stripping
// scheme, query, fragment, and trailing slashes.
func matchSloppy(rawA, rawB string) bool {
	var a = stripURL(rawA)
	var b = stripURL(rawB)

	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
} // func matchSloppy(rawA, rawB string) bool

func stripURL(raw string) string {
	var s = raw

	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")

	if idx := strings.IndexAny(s, "?#"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSuffix(s, "/")
} // func stripURL(raw string) string
