// /home/krylon/go/src/github.com/blicero/mnemosyne/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-04 18:10:41 krylon>

// Package logdomain provides symbolic constants to identify the
// various pieces of the application that need to do logging.
package logdomain

//go:generate stringer -type=ID

// ID is an id...
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	Database
	Client
	Watcher
	Ctl
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Database,
		Client,
		Watcher,
		Ctl,
	}
} // func AllDomains() []ID
