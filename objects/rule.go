// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/rule.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-14 19:21:07 krylon>

//go:generate ffjson rule.go

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects/ruletype"
)

// MaxIntervalDays is the upper limit for the interval of an Interval rule.
const MaxIntervalDays = 365

// Rule specifies the schedule on which a Config fires.
// Days and FirstTrigger are only meaningful for Interval rules;
// FirstTrigger, if non-empty, anchors the schedule so that firing days
// are aligned to multiples of Days counted from that date.
type Rule struct {
	Type         ruletype.ID
	Days         int
	FirstTrigger string
}

// Validate checks the Rule for consistency.
func (r *Rule) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("Invalid rule type %d", r.Type)
	}

	if r.Type != ruletype.Interval {
		return nil
	}

	if r.Days < 1 || r.Days > MaxIntervalDays {
		return fmt.Errorf("Interval must be between 1 and %d days (not %d)",
			MaxIntervalDays,
			r.Days)
	} else if r.FirstTrigger != "" {
		if _, err := time.Parse(common.DayFormat, r.FirstTrigger); err != nil {
			return fmt.Errorf("Cannot parse anchor date %q: %s",
				r.FirstTrigger,
				err.Error())
		}
	}

	return nil
} // func (r *Rule) Validate() error

func (r *Rule) String() string {
	switch r.Type {
	case ruletype.Daily:
		return "daily"
	case ruletype.Weekday:
		return "weekdays only"
	case ruletype.Interval:
		if r.FirstTrigger != "" {
			return fmt.Sprintf("every %d days (anchored at %s)",
				r.Days,
				r.FirstTrigger)
		}
		return fmt.Sprintf("every %d days", r.Days)
	default:
		return fmt.Sprintf("InvalidRule(%d)", r.Type)
	}
} // func (r *Rule) String() string
