// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 21:48:54 krylon>

package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/objects"
	"github.com/gorilla/mux"
	"github.com/hashicorp/logutils"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/config/all", d.handleConfigGetAll)
	d.router.HandleFunc("/config/add", d.handleConfigAdd)
	d.router.HandleFunc("/config/export", d.handleConfigExport)
	d.router.HandleFunc("/config/import", d.handleConfigImport)
	d.router.HandleFunc("/config/reset", d.handleTriggerResetAll)
	d.router.HandleFunc("/config/{id}/update", d.handleConfigUpdate)
	d.router.HandleFunc("/config/{id}/delete", d.handleConfigDelete)
	d.router.HandleFunc("/config/{id}/reset", d.handleTriggerReset)
	d.router.HandleFunc("/trigger/today/reset", d.handleTriggerResetToday)
	d.router.HandleFunc("/trigger/{id}/get", d.handleTriggerGet)
	d.router.HandleFunc("/trigger/{id}/set", d.handleTriggerSet)
	d.router.HandleFunc("/check/pending", d.handleCheckPending)
	d.router.HandleFunc("/check/request", d.handleCheckRequest)
	d.router.HandleFunc("/check/complete", d.handleCheckComplete)
	d.router.HandleFunc("/day/poll", d.handleDayPoll)
	d.router.HandleFunc("/url/open", d.handleURLOpen)
	d.router.HandleFunc("/status", d.handleStatus)
	d.router.HandleFunc("/loglevel", d.handleLogLevel)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleConfigGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		db      *database.Database
		configs []objects.Config
		buf     []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if configs, err = db.ConfigGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Configs: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if buf, err = ffjson.Marshal(configs); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Config list: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleConfigGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleConfigAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		c         objects.Config
		db        *database.Database
		cstr, msg string
		response  = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	cstr = r.PostFormValue("config")

	if err = ffjson.Unmarshal([]byte(cstr), &c); err != nil {
		msg = fmt.Sprintf("Cannot parse Config %q: %s",
			cstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = c.Validate(); err != nil {
		msg = fmt.Sprintf("Invalid Config: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if c.ID == "" {
		c.ID = common.GetUUID()
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.ConfigAdd(&c); err != nil {
		msg = fmt.Sprintf("Cannot add Config %q to database: %s",
			c.URL,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	response.Message = c.ID
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleConfigAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleConfigUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		c         objects.Config
		old       *objects.Config
		db        *database.Database
		cstr, msg string
		vars      = mux.Vars(r)
		response  = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	cstr = r.PostFormValue("config")

	if err = ffjson.Unmarshal([]byte(cstr), &c); err != nil {
		msg = fmt.Sprintf("Cannot parse Config %q: %s",
			cstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	c.ID = vars["id"]

	if err = c.Validate(); err != nil {
		msg = fmt.Sprintf("Invalid Config: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if old, err = db.ConfigGetByID(c.ID); err != nil {
		msg = fmt.Sprintf("Failed to look up Config %q: %s",
			c.ID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if old == nil {
		msg = fmt.Sprintf("Config %q was not found in database",
			c.ID)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.ConfigUpdate(&c); err != nil {
		msg = fmt.Sprintf("Cannot update Config %q: %s",
			c.ID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleConfigUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleConfigDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		db   *database.Database
		c    *objects.Config
		msg  string
		vars = mux.Vars(r)
		id   = vars["id"]
		res  = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if c, err = db.ConfigGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Config %q: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if c == nil {
		msg = fmt.Sprintf("Did not find Config %q in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.ConfigDelete(id); err != nil {
		msg = fmt.Sprintf("Failed to delete Config %q (%s): %s",
			id,
			c.URL,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	res.Message = fmt.Sprintf("Config %q (%s) was deleted",
		id,
		c.URL)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleConfigDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTriggerReset(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		db   *database.Database
		msg  string
		vars = mux.Vars(r)
		id   = vars["id"]
		res  = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.TriggerClear(id); err != nil {
		msg = fmt.Sprintf("Cannot clear trigger record for %q: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleTriggerReset(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTriggerResetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		msg string
		res = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.TriggerClearAll(); err != nil {
		msg = fmt.Sprintf("Cannot clear trigger records: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleTriggerResetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTriggerResetToday(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		msg   string
		today = common.Today()
		res   = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.TriggerClearDay(today); err != nil {
		msg = fmt.Sprintf("Cannot clear trigger records for %s: %s",
			today,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleTriggerResetToday(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		configs  []objects.Config
		raw      []byte
		pretty   bytes.Buffer
		filename string
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if configs, err = db.ConfigGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Configs: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if raw, err = ffjson.Marshal(configs); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Config list: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(raw)

	if err = json.Indent(&pretty, raw, "", "  "); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot indent serialized Config list: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	filename = fmt.Sprintf("mnemosyne-configs-%s.json",
		common.Today())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(200)
	w.Write(pretty.Bytes()) // nolint: errcheck
} // func (d *Daemon) handleConfigExport(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleConfigImport(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		db        *database.Database
		configs   []objects.Config
		cstr, msg string
		res       = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	cstr = r.PostFormValue("configs")

	// A JSON payload that is not a list of Configs is rejected as a
	// whole, nothing gets replaced. JSON null unmarshals into a nil
	// slice without an error, so it needs its own check.
	if err = ffjson.Unmarshal([]byte(cstr), &configs); err != nil {
		msg = fmt.Sprintf("Cannot parse Config list: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if configs == nil {
		msg = "Import payload is not a list of Configs"
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	for idx := range configs {
		var c = &configs[idx]

		if c.ID == "" {
			c.ID = common.GetUUID()
		}

		if err = c.Validate(); err != nil {
			msg = fmt.Sprintf("Config #%d (%s) is invalid: %s",
				idx,
				c.URL,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.ConfigReplaceAll(configs); err != nil {
		msg = fmt.Sprintf("Cannot replace Configs: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.CheckFlagSet(true); err != nil {
		d.log.Printf("[ERROR] Cannot raise needs-check flag: %s\n",
			err.Error())
	}

	res.Message = fmt.Sprintf("Imported %d Configs", len(configs))
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleConfigImport(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCheckPending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		flag  bool
		buf   []byte
		reply = objects.CheckReply{
			ID:    d.getID(),
			Today: common.Today(),
		}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if flag, err = db.CheckFlagGet(); err != nil {
		d.log.Printf("[ERROR] Cannot get needs-check flag: %s\n",
			err.Error())
	}

	reply.NeedsCheck = flag

	if buf, err = ffjson.Marshal(&reply); err != nil {
		d.log.Printf("[ERROR] Cannot serialize CheckReply: %s\n",
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleCheckPending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCheckRequest(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		msg string
		res = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.CheckFlagSet(true); err != nil {
		msg = fmt.Sprintf("Cannot raise needs-check flag: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleCheckRequest(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCheckComplete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		msg string
		res = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.CheckFlagSet(false); err != nil {
		msg = fmt.Sprintf("Cannot clear needs-check flag: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleCheckComplete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleDayPoll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{ID: d.getID()}

	d.checkDay()

	res.Message = common.Today()
	res.Status = true

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleDayPoll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleURLOpen(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err         error
		rawURL, msg string
		res         = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	rawURL = r.PostFormValue("url")

	if err = d.openURL(rawURL); err != nil {
		msg = fmt.Sprintf("Cannot open URL %q: %s",
			rawURL,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleURLOpen(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTriggerGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		day   string
		buf   []byte
		vars  = mux.Vars(r)
		id    = vars["id"]
		reply = objects.TriggerReply{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if day, err = db.TriggerGet(id); err != nil {
		d.log.Printf("[ERROR] Cannot get trigger record for %q: %s\n",
			id,
			err.Error())
	}

	reply.Day = day

	if buf, err = ffjson.Marshal(&reply); err != nil {
		d.log.Printf("[ERROR] Cannot serialize TriggerReply: %s\n",
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleTriggerGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTriggerSet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		day, msg string
		vars     = mux.Vars(r)
		id       = vars["id"]
		res      = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	day = r.PostFormValue("day")

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.TriggerSet(id, day); err != nil {
		msg = fmt.Sprintf("Cannot set trigger record for %q: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleTriggerSet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		db      *database.Database
		configs []objects.Config
		level   string
		flag    bool
		buf     []byte
		reply   = objects.StatusReply{
			ID:    d.getID(),
			Today: common.Today(),
		}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if configs, err = db.ConfigGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Configs: %s\n",
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	reply.Total = len(configs)

	for idx := range configs {
		var (
			c    = &configs[idx]
			last string
		)

		if last, err = db.TriggerGet(c.ID); err != nil {
			d.log.Printf("[ERROR] Cannot get trigger record for %q: %s\n",
				c.ID,
				err.Error())
			continue
		}

		if last == reply.Today {
			reply.TriggeredToday++
		} else if c.ShouldTrigger(last, reply.Today) {
			reply.Pending++
		}
	}

	if flag, err = db.CheckFlagGet(); err != nil {
		d.log.Printf("[ERROR] Cannot get needs-check flag: %s\n",
			err.Error())
	} else if level, err = db.LogLevelGet(); err != nil {
		d.log.Printf("[ERROR] Cannot get log level: %s\n",
			err.Error())
	}

	reply.NeedsCheck = flag
	reply.LogLevel = level

	if buf, err = ffjson.Marshal(&reply); err != nil {
		d.log.Printf("[ERROR] Cannot serialize StatusReply: %s\n",
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleLogLevel(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		level, msg string
		known      bool
		res        = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	level = r.PostFormValue("level")

	for _, l := range common.LogLevels {
		if string(l) == level {
			known = true
			break
		}
	}

	if !known {
		msg = fmt.Sprintf("Unknown log level %q", level)
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.LogLevelSet(level); err != nil {
		msg = fmt.Sprintf("Cannot store log level %q: %s",
			level,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	common.SetLogLevel(logutils.LogLevel(level))
	d.log.Printf("[INFO] Log level is now %s\n", level)

	res.Message = "OK"
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleLogLevel(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
