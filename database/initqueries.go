// /home/krylon/go/src/github.com/blicero/mnemosyne/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-15 19:28:54 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE config (
    id            TEXT PRIMARY KEY,
    url           TEXT NOT NULL,
    note          TEXT NOT NULL DEFAULT '',
    mode          INTEGER NOT NULL DEFAULT 0,
    rule_type     INTEGER NOT NULL DEFAULT 0,
    interval_days INTEGER NOT NULL DEFAULT 0,
    first_trigger TEXT NOT NULL DEFAULT '',
    changed       INTEGER NOT NULL,
    CHECK (interval_days BETWEEN 0 AND 365)
)
`,
	// No foreign key on config_id: the trigger history outlives a
	// whole-list replace on import, records of dropped Configs get
	// pruned explicitly.
	`
CREATE TABLE trigger_record (
    config_id TEXT PRIMARY KEY,
    day       TEXT NOT NULL
)
`,
	"CREATE INDEX trigger_day_idx ON trigger_record (day)",
	`
CREATE TABLE state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT ''
)
`,
}
