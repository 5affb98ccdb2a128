// /home/krylon/go/src/github.com/blicero/mnemosyne/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-15 19:40:19 krylon>

package database

import "github.com/blicero/mnemosyne/database/query"

var dbQueries = map[query.ID]string{
	query.ConfigAdd: `
INSERT INTO config (id, url, note, mode, rule_type, interval_days, first_trigger, changed)
VALUES             ( ?,   ?,    ?,    ?,         ?,             ?,             ?,       ?)
`,
	query.ConfigUpdate: `
UPDATE config
SET url = ?, note = ?, mode = ?, rule_type = ?, interval_days = ?, first_trigger = ?, changed = ?
WHERE id = ?
`,
	query.ConfigDelete: "DELETE FROM config WHERE id = ?",
	query.ConfigClear:  "DELETE FROM config",
	query.ConfigGetAll: `
SELECT
    id,
    url,
    note,
    mode,
    rule_type,
    interval_days,
    first_trigger,
    changed
FROM config
ORDER BY url, id
`,
	query.ConfigGetByID: `
SELECT
    url,
    note,
    mode,
    rule_type,
    interval_days,
    first_trigger,
    changed
FROM config
WHERE id = ?
`,
	query.TriggerGet: "SELECT day FROM trigger_record WHERE config_id = ?",
	query.TriggerSet: `
INSERT INTO trigger_record (config_id, day)
VALUES                     (        ?,   ?)
ON CONFLICT (config_id) DO UPDATE SET day = excluded.day
`,
	query.TriggerClear:    "DELETE FROM trigger_record WHERE config_id = ?",
	query.TriggerClearAll: "DELETE FROM trigger_record",
	query.TriggerClearDay: "DELETE FROM trigger_record WHERE day = ?",
	query.TriggerPrune: `
DELETE FROM trigger_record
WHERE config_id NOT IN (SELECT id FROM config)
`,
	query.StateGet: "SELECT value FROM state WHERE key = ?",
	query.StateSet: `
INSERT INTO state (key, value)
VALUES            (  ?,     ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value
`,
}
