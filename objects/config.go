// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 22:03:55 krylon>

//go:generate ffjson config.go

package objects

import (
	"fmt"
	"net/url"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
)

// Config is a single Reminder configuration: a URL the user wants to
// be pointed at, on the schedule given by its Rule, delivered per its
// Mode.
type Config struct {
	ID      string
	URL     string
	Note    string
	Mode    mode.ID
	Rule    Rule
	Changed time.Time
}

// Validate checks the Config for consistency.
func (c *Config) Validate() error {
	var (
		err error
		u   *url.URL
	)

	if u, err = url.Parse(c.URL); err != nil {
		return fmt.Errorf("Cannot parse URL %q: %s",
			c.URL,
			err.Error())
	} else if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("URL %q is not an absolute URL",
			c.URL)
	} else if !c.Mode.Valid() {
		return fmt.Errorf("Invalid mode %d", c.Mode)
	}

	return c.Rule.Validate()
} // func (c *Config) Validate() error

// ShouldTrigger decides if the Config is due to fire.
// lastTrigger is the day the Config last fired (empty == never),
// today is the current calendar day, both per common.DayFormat.
// It is a pure function of its inputs; the caller is expected to
// thread the same today value through an entire evaluation pass.
//
// No Config fires more than once per calendar day, regardless of its
// Rule. A Config whose Rule makes no sense does not fire at all.
func (c *Config) ShouldTrigger(lastTrigger, today string) bool {
	if lastTrigger == today {
		return false
	}

	switch c.Rule.Type {
	case ruletype.Daily:
		return true
	case ruletype.Weekday:
		// NB The weekday is derived from today, not from the wall
		//    clock. Near midnight those two can disagree, and the
		//    "already fired" check above uses today, so the
		//    evaluation has to be consistent with it.
		var (
			err error
			t   time.Time
		)

		if t, err = time.Parse(common.DayFormat, today); err != nil {
			return false
		}

		var wd = t.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case ruletype.Interval:
		if c.Rule.FirstTrigger != "" {
			// DayFormat dates compare correctly as strings.
			if today < c.Rule.FirstTrigger {
				return false
			} else if lastTrigger == "" {
				return today >= c.Rule.FirstTrigger
			}

			var (
				err                   error
				sinceFirst, sinceLast int
			)

			if sinceFirst, err = DaysBetween(c.Rule.FirstTrigger, today); err != nil {
				return false
			} else if sinceLast, err = DaysBetween(lastTrigger, today); err != nil {
				return false
			}

			return sinceLast >= c.Rule.Days && sinceFirst%c.Rule.Days == 0
		}

		if lastTrigger == "" {
			return true
		}

		var (
			err  error
			diff int
		)

		if diff, err = DaysBetween(lastTrigger, today); err != nil {
			return false
		}

		return diff >= c.Rule.Days
	default:
		return false
	}
} // func (c *Config) ShouldTrigger(lastTrigger, today string) bool

// Payload returns the title and body for notifying the user
// about the Config.
func (c *Config) Payload() (string, string) {
	var head = c.Note

	if head == "" {
		head = "Time to check this site!"
	}

	return head, c.URL
} // func (c *Config) Payload() (string, string)

func (c *Config) String() string {
	return fmt.Sprintf("Config{ ID: %q, URL: %q, Mode: %s, Rule: %s }",
		c.ID,
		c.URL,
		c.Mode,
		&c.Rule)
} // func (c *Config) String() string

// DaysBetween returns the number of whole calendar days from before
// to after, both rendered per common.DayFormat. The result is
// negative if after lies before before.
func DaysBetween(before, after string) (int, error) {
	var (
		err    error
		t1, t2 time.Time
	)

	if t1, err = time.Parse(common.DayFormat, before); err != nil {
		return 0, err
	} else if t2, err = time.Parse(common.DayFormat, after); err != nil {
		return 0, err
	}

	return int(t2.Sub(t1) / (time.Hour * 24)), nil
} // func DaysBetween(before, after string) (int, error)
