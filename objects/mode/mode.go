// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/mode/mode.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-05 17:02:29 krylon>

//go:generate stringer -type=ID

// Package mode contains symbolic constants to specify how a Reminder
// makes itself known to the user when it fires.
package mode

import "fmt"

// ID describes how a Reminder is delivered.
type ID uint8

// Auto means the Reminder's URL is opened without asking.
// Toast means the user is asked first and can decline.
const (
	Auto ID = iota
	Toast
)

// Parse returns the ID the given string refers to.
func Parse(s string) (ID, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "toast":
		return Toast, nil
	default:
		return 0, fmt.Errorf("Unknown mode %q", s)
	}
} // func Parse(s string) (ID, error)

// Valid returns true if the receiver is a known mode.
func (i ID) Valid() bool {
	return i <= Toast
} // func (i ID) Valid() bool
