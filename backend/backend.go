// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 21:12:30 krylon>

// Package backend implements the Daemon that coordinates the whole
// application: it owns the database, the day-rollover schedule, the
// needs-check flag, and the delivery of auto-mode Configs.
//
// The Daemon fires auto-mode Configs itself so they get delivered
// even when no watcher is running at all. The at-most-once-per-day
// guard in the trigger evaluation keeps the Daemon and the watchers
// from stepping on each other.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
	"github.com/hashicorp/logutils"
	"github.com/robfig/cron/v3"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	poolSize     = 4
	startupDelay = time.Minute
	rolloverSpec = "0 * * * *" // hourly, on the hour
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the clients, and the desktop.
type Daemon struct {
	log          *log.Logger
	pool         *database.Pool
	bus          *dbus.Conn
	lock         sync.RWMutex
	active       bool
	web          http.Server
	router       *mux.Router
	cron         *cron.Cron
	startupTimer *time.Timer
	dnssd        *zeroconf.Server
	hostname     string
	listenAddr   string
	idLock       sync.Mutex
	idCnt        int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	}

	if db := d.pool.Get(); db != nil {
		var level string

		if level, err = db.LogLevelGet(); err != nil {
			d.log.Printf("[WARN] Cannot load persisted log level: %s\n",
				err.Error())
		} else if level != "" {
			common.SetLogLevel(logutils.LogLevel(level))
		}

		d.pool.Put(db)
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		return nil, err
	}

	// Running without a session bus (headless, testing) is fine,
	// notifications just go nowhere.
	if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[WARN] Failed to connect to DBus session bus: %s\n",
			err.Error())
		d.bus = nil
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	d.cron = cron.New()
	if _, err = d.cron.AddFunc(rolloverSpec, d.checkDay); err != nil {
		d.log.Printf("[ERROR] Cannot schedule day rollover: %s\n",
			err.Error())
		return nil, err
	}
	d.cron.Start()
	d.startupTimer = time.AfterFunc(startupDelay, d.checkDay)

	if err = d.initDNSSd(); err != nil {
		d.log.Printf("[WARN] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	go d.checkDay()
	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish tells the Daemon to shut down and waits for the web server to finish.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	d.startupTimer.Stop()
	<-d.cron.Stop().Done()
	d.quitDNSSd()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

// checkDay compares the current calendar day to the last day the
// system observed. On a mismatch it persists the new day, raises the
// needs-check flag, and delivers any auto-mode Configs that are due.
func (d *Daemon) checkDay() {
	var (
		err         error
		db          *database.Database
		last, today string
	)

	if db = d.pool.Get(); db == nil {
		d.log.Println("[ERROR] Cannot get database connection from pool")
		return
	}
	defer d.pool.Put(db)

	today = common.Today()

	if last, err = db.LastDayGet(); err != nil {
		d.log.Printf("[ERROR] Cannot get last observed day: %s\n",
			err.Error())
		return
	} else if last == today {
		return
	}

	d.log.Printf("[INFO] A new day has begun: %s (previously %q)\n",
		today,
		last)

	if err = db.LastDaySet(today); err != nil {
		d.log.Printf("[ERROR] Cannot store new day mark: %s\n",
			err.Error())
		return
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
		return
	}

	d.fireAuto(db, today)
} // func (d *Daemon) checkDay()

// fireAuto delivers all auto-mode Configs that are due.
func (d *Daemon) fireAuto(db *database.Database, today string) {
	var (
		err     error
		configs []objects.Config
	)

	if configs, err = db.ConfigGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Configs: %s\n",
			err.Error())
		return
	}

	for idx := range configs {
		var (
			c    = &configs[idx]
			last string
		)

		if c.Mode != mode.Auto {
			continue
		} else if last, err = db.TriggerGet(c.ID); err != nil {
			d.log.Printf("[ERROR] Cannot get trigger record for %q: %s\n",
				c.ID,
				err.Error())
			return
		} else if !c.ShouldTrigger(last, today) {
			continue
		}

		// Mark the record before opening anything, so a racing
		// evaluation pass sees the Config as already fired.
		if err = db.TriggerSet(c.ID, today); err != nil {
			d.log.Printf("[ERROR] Cannot set trigger record for %q: %s\n",
				c.ID,
				err.Error())
			return
		}

		d.log.Printf("[INFO] Auto-firing Config %q (%s)\n",
			c.ID,
			c.URL)

		if err = d.openURL(c.URL); err != nil {
			d.log.Printf("[ERROR] Cannot open %q: %s\n",
				c.URL,
				err.Error())
		}

		if err = d.notify(c); err != nil {
			d.log.Printf("[ERROR] Failed to post notification for %q: %s\n",
				c.ID,
				err.Error())
		}
	}
} // func (d *Daemon) fireAuto(db *database.Database, today string)

// openURL opens the given URL in the user's web browser.
func (d *Daemon) openURL(rawURL string) error {
	var (
		err error
		u   *url.URL
	)

	if u, err = url.Parse(rawURL); err != nil {
		return err
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("Refusing to open URL with scheme %q",
			u.Scheme)
	}

	var cmd = exec.Command("xdg-open", u.String())

	if err = cmd.Start(); err != nil {
		d.log.Printf("[ERROR] Cannot run xdg-open %q: %s\n",
			u.String(),
			err.Error())
		return err
	}

	go cmd.Wait() // nolint: errcheck

	return nil
} // func (d *Daemon) openURL(rawURL string) error

func (d *Daemon) notify(n objects.Notification) error {
	if d.bus == nil {
		return nil
	}

	var (
		err        error
		obj        = d.bus.Object(notifyObj, notifyPath)
		head, body string
	)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	head, body = n.Payload()

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
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error
