// /home/krylon/go/src/github.com/blicero/mnemosyne/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 22:28:17 krylon>

package database

import (
	"fmt"
	"testing"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
)

const itemCnt = 16

var items []*objects.Config

func init() {
	items = make([]*objects.Config, itemCnt)

	for i := range items {
		var c = &objects.Config{
			ID:   common.GetUUID(),
			URL:  fmt.Sprintf("https://www%03d.example.com/daily", i),
			Note: fmt.Sprintf("Test reminder #%03d", i),
			Mode: mode.ID(i % 2),
			Rule: objects.Rule{Type: ruletype.Daily},
		}

		if i%3 == 0 {
			c.Rule = objects.Rule{
				Type: ruletype.Interval,
				Days: i + 1,
			}
		}

		items[i] = c
	}
}

func TestConfigAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, c := range items {
		var err error

		if err = db.ConfigAdd(c); err != nil {
			t.Fatalf("Cannot add Config %s: %s",
				c.URL,
				err.Error())
		} else if c.Changed.IsZero() {
			t.Errorf("Changed stamp of Config %s was not set", c.URL)
		}
	}
} // func TestConfigAdd(t *testing.T)

func TestConfigGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err  error
		list []objects.Config
	)

	if list, err = db.ConfigGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Configs: %s",
			err.Error())
	} else if len(list) != len(items) {
		t.Fatalf("Unexpected number of Configs: %d (expected %d)",
			len(list),
			len(items))
	}

	for i := 1; i < len(list); i++ {
		if list[i-1].URL > list[i].URL {
			t.Errorf("Config list is not ordered by URL: %q > %q",
				list[i-1].URL,
				list[i].URL)
		}
	}
} // func TestConfigGetAll(t *testing.T)

func TestConfigGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		c   *objects.Config
	)

	if c, err = db.ConfigGetByID(items[0].ID); err != nil {
		t.Fatalf("Cannot look up Config %s: %s",
			items[0].ID,
			err.Error())
	} else if c == nil {
		t.Fatalf("Config %s was not found", items[0].ID)
	} else if c.URL != items[0].URL || c.Mode != items[0].Mode || c.Rule != items[0].Rule {
		t.Errorf("Config %s came back mangled:\nExpected: %s\nGot:      %s",
			items[0].ID,
			items[0],
			c)
	}

	if c, err = db.ConfigGetByID("no-such-config"); err != nil {
		t.Fatalf("Lookup of non-existent Config failed: %s",
			err.Error())
	} else if c != nil {
		t.Errorf("Lookup of non-existent Config returned %s", c)
	}
} // func TestConfigGetByID(t *testing.T)

func TestConfigUpdate(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		c   = items[1]
	)

	c.Note = "An updated note"
	c.Rule = objects.Rule{
		Type:         ruletype.Interval,
		Days:         7,
		FirstTrigger: "2024-01-01",
	}

	if err = db.ConfigUpdate(c); err != nil {
		t.Fatalf("Cannot update Config %s: %s",
			c.ID,
			err.Error())
	}

	var fresh *objects.Config

	if fresh, err = db.ConfigGetByID(c.ID); err != nil {
		t.Fatalf("Cannot look up Config %s: %s",
			c.ID,
			err.Error())
	} else if fresh == nil {
		t.Fatalf("Updated Config %s was not found", c.ID)
	} else if fresh.Note != c.Note || fresh.Rule != c.Rule {
		t.Errorf("Update of Config %s did not stick:\nExpected: %s\nGot:      %s",
			c.ID,
			c,
			fresh)
	}
} // func TestConfigUpdate(t *testing.T)

func TestTriggerRecord(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		day   string
		c     = items[2]
		today = common.Today()
	)

	// Never triggered, so far.
	if day, err = db.TriggerGet(c.ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day != "" {
		t.Errorf("Config %s should have no trigger record, but has %q",
			c.ID,
			day)
	}

	if err = db.TriggerSet(c.ID, "2024-01-01"); err != nil {
		t.Fatalf("Cannot set trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day, err = db.TriggerGet(c.ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day != "2024-01-01" {
		t.Errorf("Unexpected trigger day for %s: %q (expected 2024-01-01)",
			c.ID,
			day)
	}

	// Overwrite, defaulting to today.
	if err = db.TriggerSet(c.ID, ""); err != nil {
		t.Fatalf("Cannot overwrite trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day, err = db.TriggerGet(c.ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day != today {
		t.Errorf("Unexpected trigger day for %s: %q (expected %s)",
			c.ID,
			day,
			today)
	}

	// Reset today's records.
	if err = db.TriggerClearDay(today); err != nil {
		t.Fatalf("Cannot clear trigger records for %s: %s",
			today,
			err.Error())
	} else if day, err = db.TriggerGet(c.ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if day != "" {
		t.Errorf("Trigger record for %s should be gone, but is %q",
			c.ID,
			day)
	}
} // func TestTriggerRecord(t *testing.T)

func TestConfigDelete(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		c   = items[3]
		day string
	)

	if err = db.TriggerSet(c.ID, ""); err != nil {
		t.Fatalf("Cannot set trigger record for %s: %s",
			c.ID,
			err.Error())
	} else if err = db.ConfigDelete(c.ID); err != nil {
		t.Fatalf("Cannot delete Config %s: %s",
			c.ID,
			err.Error())
	}

	var gone *objects.Config

	if gone, err = db.ConfigGetByID(c.ID); err != nil {
		t.Fatalf("Cannot look up deleted Config %s: %s",
			c.ID,
			err.Error())
	} else if gone != nil {
		t.Errorf("Deleted Config %s is still there: %s",
			c.ID,
			gone)
	} else if day, err = db.TriggerGet(c.ID); err != nil {
		t.Fatalf("Cannot get trigger record for deleted Config %s: %s",
			c.ID,
			err.Error())
	} else if day != "" {
		t.Errorf("Trigger record of deleted Config %s survived: %q",
			c.ID,
			day)
	}
} // func TestConfigDelete(t *testing.T)

func TestConfigReplaceAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err      error
		list     []objects.Config
		survivor = items[4]
	)

	if err = db.TriggerSet(survivor.ID, "2024-01-01"); err != nil {
		t.Fatalf("Cannot set trigger record for %s: %s",
			survivor.ID,
			err.Error())
	}

	var replacement = []objects.Config{
		*survivor,
		objects.Config{
			ID:   common.GetUUID(),
			URL:  "https://import.example.com/",
			Mode: mode.Toast,
			Rule: objects.Rule{Type: ruletype.Weekday},
		},
	}

	if err = db.ConfigReplaceAll(replacement); err != nil {
		t.Fatalf("Cannot replace Config list: %s",
			err.Error())
	} else if list, err = db.ConfigGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Configs: %s",
			err.Error())
	} else if len(list) != len(replacement) {
		t.Fatalf("Unexpected number of Configs after replace: %d (expected %d)",
			len(list),
			len(replacement))
	}

	var day string

	// The survivor keeps its trigger record, everybody else's is pruned.
	if day, err = db.TriggerGet(survivor.ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			survivor.ID,
			err.Error())
	} else if day != "2024-01-01" {
		t.Errorf("Trigger record of surviving Config %s is %q (expected 2024-01-01)",
			survivor.ID,
			day)
	}

	if day, err = db.TriggerGet(items[5].ID); err != nil {
		t.Fatalf("Cannot get trigger record for %s: %s",
			items[5].ID,
			err.Error())
	} else if day != "" {
		t.Errorf("Trigger record of dropped Config %s survived: %q",
			items[5].ID,
			day)
	}
} // func TestConfigReplaceAll(t *testing.T)

func TestStateFlags(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err  error
		flag bool
		day  string
	)

	if flag, err = db.CheckFlagGet(); err != nil {
		t.Fatalf("Cannot get check flag: %s", err.Error())
	} else if flag {
		t.Error("Check flag should initially be clear")
	}

	if err = db.CheckFlagSet(true); err != nil {
		t.Fatalf("Cannot raise check flag: %s", err.Error())
	} else if flag, err = db.CheckFlagGet(); err != nil {
		t.Fatalf("Cannot get check flag: %s", err.Error())
	} else if !flag {
		t.Error("Check flag should be raised")
	}

	if err = db.CheckFlagSet(false); err != nil {
		t.Fatalf("Cannot clear check flag: %s", err.Error())
	} else if flag, err = db.CheckFlagGet(); err != nil {
		t.Fatalf("Cannot get check flag: %s", err.Error())
	} else if flag {
		t.Error("Check flag should be clear again")
	}

	if day, err = db.LastDayGet(); err != nil {
		t.Fatalf("Cannot get last day: %s", err.Error())
	} else if day != "" {
		t.Errorf("Last day should initially be empty, not %q", day)
	}

	if err = db.LastDaySet(common.Today()); err != nil {
		t.Fatalf("Cannot set last day: %s", err.Error())
	} else if day, err = db.LastDayGet(); err != nil {
		t.Fatalf("Cannot get last day: %s", err.Error())
	} else if day != common.Today() {
		t.Errorf("Unexpected last day %q (expected %s)",
			day,
			common.Today())
	}
} // func TestStateFlags(t *testing.T)
