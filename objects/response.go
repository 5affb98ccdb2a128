// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-15 20:38:46 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
type Response struct {
	ID      int64
	Status  bool
	Message string
}

// CheckReply tells a client whether an evaluation pass is owed.
type CheckReply struct {
	ID         int64
	NeedsCheck bool
	Today      string
}

// TriggerReply carries the last day a Config fired, empty if it
// never has.
type TriggerReply struct {
	ID  int64
	Day string
}

// StatusReply summarizes the state of the backend for display.
type StatusReply struct {
	ID             int64
	Today          string
	Total          int
	TriggeredToday int
	Pending        int
	NeedsCheck     bool
	LogLevel       string
}
