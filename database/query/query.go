// /home/krylon/go/src/github.com/blicero/mnemosyne/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-15 19:12:33 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	ConfigAdd ID = iota
	ConfigUpdate
	ConfigDelete
	ConfigClear
	ConfigGetAll
	ConfigGetByID
	TriggerGet
	TriggerSet
	TriggerClear
	TriggerClearAll
	TriggerClearDay
	TriggerPrune
	StateGet
	StateSet
)
