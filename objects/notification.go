// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-05 18:40:12 krylon>

// Package objects provides the data types used by the application.
package objects

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Payload() (string, string)
}
