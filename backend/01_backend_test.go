// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 22:48:31 krylon>

package backend

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
	"github.com/pquerna/ffjson/ffjson"
)

var (
	back     *Daemon
	testAddr = "[::1]:42817"
	cfgID    string
)

func testURL(path string) string {
	return fmt.Sprintf("http://%s%s", testAddr, path)
} // func testURL(path string) string

func getJSON(t *testing.T, path string, dst interface{}) {
	t.Helper()

	var (
		err  error
		buf  []byte
		resp *http.Response
	)

	if resp, err = http.Get(testURL(path)); err != nil {
		t.Fatalf("GET %s failed: %s",
			path,
			err.Error())
	}

	defer resp.Body.Close() // nolint: errcheck

	if buf, err = io.ReadAll(resp.Body); err != nil {
		t.Fatalf("Cannot read response to GET %s: %s",
			path,
			err.Error())
	} else if err = ffjson.Unmarshal(buf, dst); err != nil {
		t.Fatalf("Cannot parse response to GET %s: %s\n%s",
			path,
			err.Error(),
			buf)
	}
} // func getJSON(t *testing.T, path string, dst interface{})

func postForm(t *testing.T, path string, values url.Values) objects.Response {
	t.Helper()

	var (
		err  error
		buf  []byte
		resp *http.Response
		res  objects.Response
	)

	if resp, err = http.PostForm(testURL(path), values); err != nil {
		t.Fatalf("POST %s failed: %s",
			path,
			err.Error())
	}

	defer resp.Body.Close() // nolint: errcheck

	if buf, err = io.ReadAll(resp.Body); err != nil {
		t.Fatalf("Cannot read response to POST %s: %s",
			path,
			err.Error())
	} else if err = ffjson.Unmarshal(buf, &res); err != nil {
		t.Fatalf("Cannot parse response to POST %s: %s\n%s",
			path,
			err.Error(),
			buf)
	}

	return res
} // func postForm(t *testing.T, path string, values url.Values) objects.Response

func TestSummon(t *testing.T) {
	var err error

	if back, err = Summon(testAddr); err != nil {
		back = nil
		t.Fatalf("Cannot create Daemon: %s",
			err.Error())
	}

	// Give the web server and the initial day check a moment.
	time.Sleep(time.Millisecond * 250)
} // func TestSummon(t *testing.T)

func TestCheckHandshake(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var reply objects.CheckReply

	// The Daemon has never seen any day before, so starting up counts
	// as a day rollover, which raises the flag.
	getJSON(t, "/check/pending", &reply)

	if !reply.NeedsCheck {
		t.Error("Needs-check flag should be raised after the first day rollover")
	} else if reply.Today != common.Today() {
		t.Errorf("Unexpected day in CheckReply: %q (expected %q)",
			reply.Today,
			common.Today())
	}

	var res = postForm(t, "/check/complete", url.Values{})

	if !res.Status {
		t.Fatalf("Failed to complete check: %s",
			res.Message)
	}

	getJSON(t, "/check/pending", &reply)

	if reply.NeedsCheck {
		t.Error("Needs-check flag should be clear after a completed check")
	}
} // func TestCheckHandshake(t *testing.T)

func TestConfigAdd(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err error
		buf []byte
		c   = objects.Config{
			URL:  "https://www.example.com/news",
			Note: "Check the news",
			Mode: mode.Toast,
			Rule: objects.Rule{Type: ruletype.Daily},
		}
	)

	if buf, err = ffjson.Marshal(&c); err != nil {
		t.Fatalf("Cannot serialize Config: %s",
			err.Error())
	}

	var res = postForm(t, "/config/add", url.Values{"config": {string(buf)}})

	if !res.Status {
		t.Fatalf("Failed to add Config: %s",
			res.Message)
	} else if res.Message == "" {
		t.Fatal("Backend did not return an ID for the new Config")
	}

	cfgID = res.Message

	// Any mutation must raise the needs-check flag again.
	var reply objects.CheckReply

	getJSON(t, "/check/pending", &reply)

	if !reply.NeedsCheck {
		t.Error("Needs-check flag should be raised after adding a Config")
	}
} // func TestConfigAdd(t *testing.T)

func TestConfigGetAll(t *testing.T) {
	if back == nil || cfgID == "" {
		t.SkipNow()
	}

	var configs []objects.Config

	getJSON(t, "/config/all", &configs)

	if len(configs) != 1 {
		t.Fatalf("Unexpected number of Configs: %d (expected 1)",
			len(configs))
	} else if configs[0].ID != cfgID {
		t.Errorf("Unexpected Config ID %q (expected %q)",
			configs[0].ID,
			cfgID)
	} else if configs[0].URL != "https://www.example.com/news" {
		t.Errorf("Unexpected Config URL %q",
			configs[0].URL)
	}
} // func TestConfigGetAll(t *testing.T)

func TestImportReject(t *testing.T) {
	if back == nil || cfgID == "" {
		t.SkipNow()
	}

	var res = postForm(t,
		"/config/import",
		url.Values{"configs": {`{"URL": "https://www.example.com/"}`}})

	if res.Status {
		t.Error("Importing a payload that is not a list should fail")
	}

	// The rejected import must not have touched the stored Configs.
	var configs []objects.Config

	getJSON(t, "/config/all", &configs)

	if len(configs) != 1 {
		t.Errorf("Rejected import changed the Config list: %d Configs (expected 1)",
			len(configs))
	}
} // func TestImportReject(t *testing.T)

func TestImportNull(t *testing.T) {
	if back == nil || cfgID == "" {
		t.SkipNow()
	}

	// JSON null parses into a nil slice without an error, which must
	// not slip through as an empty list and wipe everything.
	var res = postForm(t,
		"/config/import",
		url.Values{"configs": {"null"}})

	if res.Status {
		t.Error("Importing JSON null should fail, but it was accepted")
	}

	var configs []objects.Config

	getJSON(t, "/config/all", &configs)

	if len(configs) != 1 {
		t.Errorf("Import of JSON null changed the Config list: %d Configs (expected 1)",
			len(configs))
	}
} // func TestImportNull(t *testing.T)

func TestImport(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err     error
		buf     []byte
		configs = []objects.Config{
			{
				URL:  "https://www.example.com/comic",
				Note: "New strip on weekdays",
				Mode: mode.Toast,
				Rule: objects.Rule{Type: ruletype.Weekday},
			},
			{
				URL:  "https://www.example.com/blog",
				Mode: mode.Toast,
				Rule: objects.Rule{Type: ruletype.Interval, Days: 7},
			},
		}
	)

	if buf, err = ffjson.Marshal(configs); err != nil {
		t.Fatalf("Cannot serialize Config list: %s",
			err.Error())
	}

	var res = postForm(t, "/config/import", url.Values{"configs": {string(buf)}})

	if !res.Status {
		t.Fatalf("Failed to import Configs: %s",
			res.Message)
	}

	var stored []objects.Config

	getJSON(t, "/config/all", &stored)

	if len(stored) != 2 {
		t.Errorf("Unexpected number of Configs after import: %d (expected 2)",
			len(stored))
	}
} // func TestImport(t *testing.T)

func TestExportRoundTrip(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err           error
		buf           []byte
		resp          *http.Response
		before, after []objects.Config
	)

	getJSON(t, "/config/all", &before)

	if resp, err = http.Get(testURL("/config/export")); err != nil {
		t.Fatalf("GET /config/export failed: %s",
			err.Error())
	}

	defer resp.Body.Close() // nolint: errcheck

	if buf, err = io.ReadAll(resp.Body); err != nil {
		t.Fatalf("Cannot read export document: %s",
			err.Error())
	}

	var res = postForm(t, "/config/import", url.Values{"configs": {string(buf)}})

	if !res.Status {
		t.Fatalf("Failed to import exported document: %s",
			res.Message)
	}

	getJSON(t, "/config/all", &after)

	if len(after) != len(before) {
		t.Fatalf("Import of exported document changed the number of Configs: %d (expected %d)",
			len(after),
			len(before))
	}

	for idx := range before {
		if before[idx].ID != after[idx].ID ||
			before[idx].URL != after[idx].URL ||
			before[idx].Note != after[idx].Note ||
			before[idx].Mode != after[idx].Mode ||
			before[idx].Rule != after[idx].Rule {
			t.Errorf("Config #%d changed in the round trip:\n%s\nvs\n%s",
				idx,
				&before[idx],
				&after[idx])
		}
	}
} // func TestExportRoundTrip(t *testing.T)

func TestStatus(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var reply objects.StatusReply

	getJSON(t, "/status", &reply)

	if reply.Total != 2 {
		t.Errorf("Unexpected number of Configs in status: %d (expected 2)",
			reply.Total)
	} else if reply.Today != common.Today() {
		t.Errorf("Unexpected day in status: %q (expected %q)",
			reply.Today,
			common.Today())
	}
} // func TestStatus(t *testing.T)

func TestLogLevel(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var res = postForm(t, "/loglevel", url.Values{"level": {"ERROR"}})

	if !res.Status {
		t.Fatalf("Failed to set log level: %s",
			res.Message)
	}

	// Storing the level is not enough, it has to reach the filters.
	if common.PackageLevels[logdomain.Backend] != "ERROR" {
		t.Errorf("Log level was stored but not applied: %s",
			common.PackageLevels[logdomain.Backend])
	}

	var reply objects.StatusReply

	getJSON(t, "/status", &reply)

	if reply.LogLevel != "ERROR" {
		t.Errorf("Unexpected log level in status: %q (expected \"ERROR\")",
			reply.LogLevel)
	}

	res = postForm(t, "/loglevel", url.Values{"level": {"TRACE"}})

	if !res.Status {
		t.Fatalf("Failed to restore log level: %s",
			res.Message)
	}
} // func TestLogLevel(t *testing.T)

func TestNotify(t *testing.T) {
	if back == nil || back.bus == nil {
		t.SkipNow()
	}

	var (
		err error
		c   = &objects.Config{
			URL:  "https://www.example.com/news",
			Note: "Testing, one, two",
			Mode: mode.Toast,
			Rule: objects.Rule{Type: ruletype.Daily},
		}
	)

	if err = back.notify(c); err != nil {
		t.Errorf("Cannot send notification via DBus: %s",
			err.Error())
	}
} // func TestNotify(t *testing.T)

// We pull the table out from under the Daemon to see that a failed
// database query results in an HTTP error instead of an empty 200.
// This wrecks the database for good, so it has to run last.
func TestConfigGetAllDatabaseError(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err error
		db  *sql.DB
		res *http.Response
	)

	if db, err = sql.Open("sqlite3", common.DbPath); err != nil {
		t.Fatalf("Cannot open database at %s: %s",
			common.DbPath,
			err.Error())
	}

	defer db.Close() // nolint: errcheck

	if _, err = db.Exec("DROP TABLE config"); err != nil {
		t.Fatalf("Cannot drop table config: %s",
			err.Error())
	}

	if res, err = http.Get(testURL("/config/all")); err != nil {
		t.Fatalf("Cannot GET /config/all: %s",
			err.Error())
	}

	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != 500 {
		t.Errorf("Unexpected HTTP status for /config/all on a broken database: %d (expected 500)",
			res.StatusCode)
	}
} // func TestConfigGetAllDatabaseError(t *testing.T)
