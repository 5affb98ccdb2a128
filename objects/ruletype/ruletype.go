// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/ruletype/ruletype.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-05 17:04:50 krylon>

//go:generate stringer -type=ID

// Package ruletype contains symbolic constants to specify the schedule
// on which a Reminder fires.
package ruletype

import "fmt"

// ID describes the schedule variant of a Reminder.
type ID uint8

// Daily means the Reminder fires every day it has not fired yet.
// Weekday means it fires Monday through Friday.
// Interval means it fires every N days, optionally anchored to a
// fixed starting date.
const (
	Daily ID = iota
	Weekday
	Interval
)

// Parse returns the ID the given string refers to.
func Parse(s string) (ID, error) {
	switch s {
	case "daily":
		return Daily, nil
	case "weekday":
		return Weekday, nil
	case "interval":
		return Interval, nil
	default:
		return 0, fmt.Errorf("Unknown rule type %q", s)
	}
} // func Parse(s string) (ID, error)

// Valid returns true if the receiver is a known rule type.
func (i ID) Valid() bool {
	return i <= Interval
} // func (i ID) Valid() bool
