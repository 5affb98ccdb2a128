// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/watcher/watch/watch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-18 19:27:32 krylon>

// Package watch implements the Watcher, the client that periodically
// asks the backend if an evaluation pass is owed and delivers the
// Configs that are due.
//
// The Watcher cycles through a small number of states:
//
//	Idle -> AwaitFlag -> Evaluate -> Report -> Idle
//
// A pass begins on a timer tick or on an explicit wakeup. AwaitFlag
// asks the backend for the needs-check flag; if it is down, the pass
// ends right there. Evaluate walks all Configs and delivers the due
// ones, Report tells the backend the pass is complete. If the backend
// is unreachable too many times in a row, the Watcher enters the
// terminal state Disabled.
package watch

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/clients/clientlib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/godbus/dbus/v5"
)

// State describes what the Watcher is currently doing.
type State uint8

// The states the Watcher can be in. Disabled is terminal.
const (
	StateIdle State = iota
	StateAwaitFlag
	StateEvaluate
	StateReport
	StateDisabled
)

var stateNames = [...]string{
	"Idle",
	"AwaitFlag",
	"Evaluate",
	"Report",
	"Disabled",
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return fmt.Sprintf("Unknown State (%d)", s)
	}
	return stateNames[s]
} // func (s State) String() string

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	notifyIntf   = "org.freedesktop.Notifications"
	startupDelay = time.Second * 10
	toastTimeout = time.Second * 30
	maxFailures  = 5
)

// Watcher periodically asks the backend for work and delivers due Configs.
type Watcher struct {
	log        *log.Logger
	client     *clientlib.Client
	bus        *dbus.Conn
	lock       sync.RWMutex
	state      State
	active     bool
	failures   int
	sessionURL string
	interval   time.Duration
	wakeQ      chan struct{}
	stopQ      chan struct{}
}

// New creates a Watcher talking to the backend at the given address.
// sessionURL, if non-empty, is the URL the Watcher considers "open in
// the current session": Configs matching it get marked without
// opening anything, the user is looking at the page already.
func New(srv, sessionURL string, interval time.Duration) (*Watcher, error) {
	var (
		err error
		w   = &Watcher{
			active:     true,
			sessionURL: sessionURL,
			interval:   interval,
			wakeQ:      make(chan struct{}, 1),
			stopQ:      make(chan struct{}),
		}
	)

	if w.client, err = clientlib.NewClient(srv); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create backend client: %s\n",
			err.Error())
		return nil, err
	}

	w.log = w.client.GetLogger()

	if w.bus, err = dbus.SessionBus(); err != nil {
		w.log.Printf("[WARN] Failed to connect to DBus session bus: %s\n",
			err.Error())
		w.bus = nil
	} else if err = w.bus.AddMatchSignal(
		dbus.WithMatchInterface(notifyIntf),
		dbus.WithMatchMember("ActionInvoked")); err != nil {
		w.log.Printf("[WARN] Cannot subscribe to notification actions: %s\n",
			err.Error())
	}

	return w, nil
} // func New(srv, sessionURL string, interval time.Duration) (*Watcher, error)

// State returns the Watcher's current state.
func (w *Watcher) State() State {
	w.lock.RLock()
	var s = w.state
	w.lock.RUnlock()
	return s
} // func (w *Watcher) State() State

func (w *Watcher) setState(s State) {
	w.lock.Lock()
	w.state = s
	w.lock.Unlock()
} // func (w *Watcher) setState(s State)

// IsAlive returns true until the Watcher has been stopped or disabled.
func (w *Watcher) IsAlive() bool {
	w.lock.RLock()
	var alive = w.active
	w.lock.RUnlock()
	return alive
} // func (w *Watcher) IsAlive() bool

// Wake nudges the Watcher to start a pass right now.
func (w *Watcher) Wake() {
	select {
	case w.wakeQ <- struct{}{}:
	default:
	}
} // func (w *Watcher) Wake()

// Stop tells the Watcher to quit.
func (w *Watcher) Stop() {
	w.lock.Lock()
	if w.active {
		w.active = false
		close(w.stopQ)
	}
	w.lock.Unlock()
} // func (w *Watcher) Stop()

// Run is the Watcher's main loop. It blocks until the Watcher is
// stopped or disables itself.
func (w *Watcher) Run() {
	defer w.log.Println("[INFO] Watcher is quitting")

	w.log.Printf("[INFO] Watcher starting up, first pass in %s\n",
		startupDelay)

	// Waiting a little before the first pass gives a freshly booted
	// desktop time to get the backend running.
	var startup = time.NewTimer(startupDelay)

	select {
	case <-startup.C:
	case <-w.stopQ:
		startup.Stop()
		return
	}

	w.pass()

	var ticker = time.NewTicker(w.interval)
	defer ticker.Stop()

	for w.IsAlive() {
		select {
		case <-ticker.C:
			w.pass()
		case <-w.wakeQ:
			w.log.Println("[DEBUG] Watcher was woken up explicitly")
			w.pass()
		case <-w.stopQ:
			return
		}
	}
} // func (w *Watcher) Run()

// pass performs one full cycle of the state machine.
func (w *Watcher) pass() {
	var (
		err   error
		reply *objects.CheckReply
	)

	w.setState(StateAwaitFlag)
	defer func() {
		if w.State() != StateDisabled {
			w.setState(StateIdle)
		}
	}()

	// Nudge the backend first, in case it has not noticed the day
	// change yet (e.g. the machine just woke from suspend).
	if err = w.client.DayPoll(); err != nil {
		w.log.Printf("[WARN] Cannot poll backend for day rollover: %s\n",
			err.Error())
	}

	if reply, err = w.client.CheckPending(); err != nil {
		w.log.Printf("[ERROR] Cannot ask backend for needs-check flag: %s\n",
			err.Error())
		w.fail()
		return
	}

	w.failures = 0

	if !reply.NeedsCheck {
		return
	}

	w.log.Printf("[INFO] Beginning evaluation pass for %s\n",
		reply.Today)

	w.setState(StateEvaluate)

	var toasts []objects.Config

	if toasts, err = w.evaluate(reply.Today); err != nil {
		return
	}

	w.setState(StateReport)

	if err = w.client.CheckComplete(); err != nil {
		w.log.Printf("[ERROR] Cannot report completed pass to backend: %s\n",
			err.Error())
		w.fail()
		return
	}

	// Toasts are handled after the pass is reported complete; the
	// records are already marked, and a user staring at a dialog
	// should not hold up the handshake.
	for idx := range toasts {
		w.deliverToast(&toasts[idx])
	}
} // func (w *Watcher) pass()

// evaluate walks all Configs and handles the due ones. Toast-mode
// Configs are marked immediately but returned to the caller for
// delivery, so prompting the user does not stall the pass.
func (w *Watcher) evaluate(today string) ([]objects.Config, error) {
	var (
		err     error
		configs []objects.Config
		toasts  []objects.Config
	)

	if configs, err = w.client.FetchConfigs(); err != nil {
		w.log.Printf("[ERROR] Cannot fetch Configs from backend: %s\n",
			err.Error())
		w.fail()
		return nil, err
	}

	for idx := range configs {
		var (
			c    = &configs[idx]
			last string
		)

		if last, err = w.client.GetTrigger(c.ID); err != nil {
			w.log.Printf("[ERROR] Cannot get trigger record for %q: %s\n",
				c.ID,
				err.Error())
			continue
		} else if !c.ShouldTrigger(last, today) {
			continue
		}

		switch {
		case w.sessionURL != "" && objects.URLMatch(c.URL, w.sessionURL, false):
			// The user is already looking at the page, no need
			// to open anything.
			w.log.Printf("[INFO] Config %q matches the session URL, marking it as fired\n",
				c.ID)

			if err = w.client.SetTrigger(c.ID, today); err != nil {
				w.log.Printf("[ERROR] Cannot mark Config %q: %s\n",
					c.ID,
					err.Error())
				continue
			}

			w.banner(c)
		case c.Mode == mode.Auto:
			if err = w.client.SetTrigger(c.ID, today); err != nil {
				w.log.Printf("[ERROR] Cannot mark Config %q: %s\n",
					c.ID,
					err.Error())
				continue
			} else if err = w.client.OpenURL(c.URL); err != nil {
				w.log.Printf("[ERROR] Cannot open %q: %s\n",
					c.URL,
					err.Error())
			}
		default:
			// Mark first, ask later. If the user dismisses the
			// prompt or walks away, the Config stays fired for
			// the day.
			if err = w.client.SetTrigger(c.ID, today); err != nil {
				w.log.Printf("[ERROR] Cannot mark Config %q: %s\n",
					c.ID,
					err.Error())
				continue
			}

			toasts = append(toasts, *c)
		}
	}

	return toasts, nil
} // func (w *Watcher) evaluate(today string) ([]objects.Config, error)

// deliverToast prompts the user about a toast-mode Config and opens
// its URL if they accept.
func (w *Watcher) deliverToast(c *objects.Config) {
	var err error

	if !w.promptToast(c) {
		w.log.Printf("[DEBUG] User declined (or ignored) Config %q\n",
			c.ID)
		return
	}

	if err = w.client.OpenURL(c.URL); err != nil {
		w.log.Printf("[ERROR] Cannot open %q: %s\n",
			c.URL,
			err.Error())
	}
} // func (w *Watcher) deliverToast(c *objects.Config)

// promptToast asks the user whether to open a Config's URL, via a
// desktop notification with an action button, or on the terminal if
// no session bus is available.
func (w *Watcher) promptToast(c *objects.Config) bool {
	if w.bus == nil {
		return w.promptTerminal(c)
	}

	var (
		head, body = c.Payload()
		obj        = w.bus.Object(notifyObj, notifyPath)
		nid        uint32
	)

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{"default", "Open"},
		map[string]dbus.Variant{},
		int32(toastTimeout/time.Millisecond),
	)

	if res.Err != nil {
		w.log.Printf("[ERROR] Cannot send notification for %q: %s\n",
			c.ID,
			res.Err.Error())
		return false
	} else if err := res.Store(&nid); err != nil {
		w.log.Printf("[ERROR] Cannot get notification ID: %s\n",
			err.Error())
		return false
	}

	var (
		sigQ    = make(chan *dbus.Signal, 8)
		timeout = time.After(toastTimeout)
	)

	w.bus.Signal(sigQ)
	defer w.bus.RemoveSignal(sigQ)

	for {
		select {
		case sig := <-sigQ:
			if sig.Name != notifyIntf+".ActionInvoked" || len(sig.Body) != 2 {
				continue
			} else if id, ok := sig.Body[0].(uint32); ok && id == nid {
				return true
			}
		case <-timeout:
			return false
		}
	}
} // func (w *Watcher) promptToast(c *objects.Config) bool

func (w *Watcher) promptTerminal(c *objects.Config) bool {
	var (
		err        error
		line       string
		info       os.FileInfo
		head, body = c.Payload()
	)

	if info, err = os.Stdin.Stat(); err != nil || info.Mode()&os.ModeCharDevice == 0 {
		w.log.Printf("[WARN] No way to prompt the user about %q, skipping\n",
			c.ID)
		return false
	}

	fmt.Printf("%s - %s\nOpen %s now? [y/N] ",
		head,
		body,
		c.URL)

	var rdr = bufio.NewReader(os.Stdin)

	if line, err = rdr.ReadString('\n'); err != nil {
		w.log.Printf("[ERROR] Cannot read answer from terminal: %s\n",
			err.Error())
		return false
	}

	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
} // func (w *Watcher) promptTerminal(c *objects.Config) bool

// banner posts a plain notification, telling the user a page they are
// already looking at was due today.
func (w *Watcher) banner(c *objects.Config) {
	if w.bus == nil {
		return
	}

	var (
		head, body = c.Payload()
		obj        = w.bus.Object(notifyObj, notifyPath)
	)

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		w.log.Printf("[ERROR] Cannot send notification for %q: %s\n",
			c.ID,
			res.Err.Error())
	}
} // func (w *Watcher) banner(c *objects.Config)

// fail counts consecutive failures to reach the backend. Too many in
// a row disable the Watcher for good.
func (w *Watcher) fail() {
	w.failures++

	if w.failures >= maxFailures {
		w.log.Printf("[CRITICAL] Backend unreachable %d times in a row, giving up\n",
			w.failures)
		w.setState(StateDisabled)
		w.Stop()
	}
} // func (w *Watcher) fail()
