// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/watcher/watch/01_watch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-18 20:02:29 krylon>

package watch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// fakeBackend mimics just enough of the real backend for the Watcher
// to run a full pass against it.
type fakeBackend struct {
	lock     sync.Mutex
	flag     bool
	configs  []objects.Config
	triggers map[string]string
	opened   []string
}

func (f *fakeBackend) router() *mux.Router {
	var r = mux.NewRouter()

	r.HandleFunc("/day/poll", func(w http.ResponseWriter, _ *http.Request) {
		f.sendJSON(w, &objects.Response{Status: true, Message: common.Today()})
	})

	r.HandleFunc("/check/pending", func(w http.ResponseWriter, _ *http.Request) {
		f.lock.Lock()
		var reply = objects.CheckReply{
			NeedsCheck: f.flag,
			Today:      common.Today(),
		}
		f.lock.Unlock()
		f.sendJSON(w, &reply)
	})

	r.HandleFunc("/check/complete", func(w http.ResponseWriter, _ *http.Request) {
		f.lock.Lock()
		f.flag = false
		f.lock.Unlock()
		f.sendJSON(w, &objects.Response{Status: true, Message: "OK"})
	})

	r.HandleFunc("/config/all", func(w http.ResponseWriter, _ *http.Request) {
		f.lock.Lock()
		var configs = f.configs
		f.lock.Unlock()
		f.sendJSON(w, configs)
	})

	r.HandleFunc("/trigger/{id}/get", func(w http.ResponseWriter, r *http.Request) {
		var id = mux.Vars(r)["id"]
		f.lock.Lock()
		var reply = objects.TriggerReply{Day: f.triggers[id]}
		f.lock.Unlock()
		f.sendJSON(w, &reply)
	})

	r.HandleFunc("/trigger/{id}/set", func(w http.ResponseWriter, r *http.Request) {
		var id = mux.Vars(r)["id"]
		r.ParseForm() // nolint: errcheck
		f.lock.Lock()
		f.triggers[id] = r.PostFormValue("day")
		f.lock.Unlock()
		f.sendJSON(w, &objects.Response{Status: true, Message: "OK"})
	})

	r.HandleFunc("/url/open", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm() // nolint: errcheck
		f.lock.Lock()
		f.opened = append(f.opened, r.PostFormValue("url"))
		f.lock.Unlock()
		f.sendJSON(w, &objects.Response{Status: true, Message: "OK"})
	})

	return r
} // func (f *fakeBackend) router() *mux.Router

func (f *fakeBackend) sendJSON(w http.ResponseWriter, payload interface{}) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(payload); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (f *fakeBackend) sendJSON(w http.ResponseWriter, payload interface{})

func mkBackend() *fakeBackend {
	return &fakeBackend{
		flag: true,
		configs: []objects.Config{
			{
				ID:   "cfg-auto",
				URL:  "https://news.example.com/",
				Note: "Check the news",
				Mode: mode.Auto,
				Rule: objects.Rule{Type: ruletype.Daily},
			},
			{
				ID:   "cfg-toast",
				URL:  "https://blog.example.com/",
				Mode: mode.Toast,
				Rule: objects.Rule{Type: ruletype.Interval, Days: 3},
			},
		},
		triggers: make(map[string]string),
	}
} // func mkBackend() *fakeBackend

func mkWatcher(t *testing.T, srvURL, sessionURL string) *Watcher {
	t.Helper()

	var (
		err error
		w   *Watcher
	)

	if w, err = New(strings.TrimPrefix(srvURL, "http://"), sessionURL, time.Minute); err != nil {
		t.Fatalf("Cannot create Watcher: %s",
			err.Error())
	}

	// No desktop in the test environment, prompting must not block.
	w.bus = nil

	return w
} // func mkWatcher(t *testing.T, srvURL, sessionURL string) *Watcher

func TestPassDelivers(t *testing.T) {
	var (
		f     = mkBackend()
		srv   = httptest.NewServer(f.router())
		today = common.Today()
	)
	defer srv.Close()

	var w = mkWatcher(t, srv.URL, "")

	w.pass()

	if w.State() != StateIdle {
		t.Errorf("Watcher should be Idle after a pass, not %s",
			w.State())
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.flag {
		t.Error("Needs-check flag should be down after a completed pass")
	}

	if f.triggers["cfg-auto"] != today {
		t.Errorf("Auto Config was not marked as fired (record is %q)",
			f.triggers["cfg-auto"])
	}

	if f.triggers["cfg-toast"] != today {
		t.Errorf("Toast Config was not marked as fired (record is %q)",
			f.triggers["cfg-toast"])
	}

	// The auto Config gets opened; the toast one does not, there is
	// nobody around to say yes.
	if len(f.opened) != 1 || f.opened[0] != "https://news.example.com/" {
		t.Errorf("Unexpected list of opened URLs: %v",
			f.opened)
	}
} // func TestPassDelivers(t *testing.T)

func TestPassFlagDown(t *testing.T) {
	var (
		f   = mkBackend()
		srv = httptest.NewServer(f.router())
	)
	defer srv.Close()

	f.flag = false

	var w = mkWatcher(t, srv.URL, "")

	w.pass()

	f.lock.Lock()
	defer f.lock.Unlock()

	if len(f.triggers) != 0 {
		t.Errorf("Watcher marked Configs although the flag was down: %v",
			f.triggers)
	} else if len(f.opened) != 0 {
		t.Errorf("Watcher opened URLs although the flag was down: %v",
			f.opened)
	}
} // func TestPassFlagDown(t *testing.T)

func TestPassSessionMatch(t *testing.T) {
	var (
		f     = mkBackend()
		srv   = httptest.NewServer(f.router())
		today = common.Today()
	)
	defer srv.Close()

	var w = mkWatcher(t, srv.URL, "https://blog.example.com/2023/03/21/hello")

	w.pass()

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.triggers["cfg-toast"] != today {
		t.Errorf("Session-matched Config was not marked as fired (record is %q)",
			f.triggers["cfg-toast"])
	}

	// Only the auto Config gets opened, the toast one matches the
	// session URL.
	if len(f.opened) != 1 || f.opened[0] != "https://news.example.com/" {
		t.Errorf("Unexpected list of opened URLs: %v",
			f.opened)
	}
} // func TestPassSessionMatch(t *testing.T)

func TestPassAtMostOnce(t *testing.T) {
	var (
		f     = mkBackend()
		srv   = httptest.NewServer(f.router())
		today = common.Today()
	)
	defer srv.Close()

	f.triggers["cfg-auto"] = today
	f.triggers["cfg-toast"] = today

	var w = mkWatcher(t, srv.URL, "")

	w.pass()

	f.lock.Lock()
	defer f.lock.Unlock()

	if len(f.opened) != 0 {
		t.Errorf("Configs that already fired today were delivered again: %v",
			f.opened)
	}

	if f.flag {
		t.Error("Needs-check flag should be down after a completed pass")
	}
} // func TestPassAtMostOnce(t *testing.T)

func TestDisable(t *testing.T) {
	// Point the Watcher at an address nothing listens on.
	var w = mkWatcher(t, "http://localhost:1", "")

	for i := 0; i < maxFailures; i++ {
		w.pass()
	}

	if w.State() != StateDisabled {
		t.Errorf("Watcher should be Disabled after %d failed passes, not %s",
			maxFailures,
			w.State())
	} else if w.IsAlive() {
		t.Error("A Disabled Watcher should not be alive")
	}
} // func TestDisable(t *testing.T)
