// /home/krylon/go/src/github.com/blicero/mnemosyne/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 21:58:02 krylon>

// Package database provides persistence for the application's data.
// It is the sole owner of all stored state; every other component
// goes through its operations and never caches authoritative data
// beyond a single evaluation pass.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database/query"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// Names of the keys in the state table.
const (
	keyNeedCheck = "needcheck"
	keyLastDay   = "lastday"
	keyLogLevel  = "loglevel"
)

const retryDelay = 25 * time.Millisecond

func worthARetry(e error) bool {
	switch t := e.(type) {
	case sqlite3.Error:
		return t.Code == sqlite3.ErrBusy || t.Code == sqlite3.ErrLocked
	default:
		return false
	}
} // func worthARetry(e error) bool

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database wraps a database connection and provides the operations on
// the stored data the application needs.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens the database at the given path.
// If the database does not exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?%s",
		path,
		"_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0&_busy_timeout=5000")

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if db file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open database at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}

		db.log.Printf("[INFO] Database at %s has been initialized.\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	if db.tx != nil {
		if err := db.tx.Rollback(); err != nil {
			db.log.Printf("[CANTHAPPEN] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err := stmt.Close(); err != nil {
			db.log.Printf("[CANTHAPPEN] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err := db.db.Close(); err != nil {
		db.log.Printf("[CANTHAPPEN] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		ok   bool
		err  error
	)

	if stmt, ok = db.queries[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt

	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be active at any given time!
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		var msg = fmt.Sprintf(
			"Cannot begin transaction: transaction is already in progress on database#%d",
			db.id)
		db.log.Printf("[ERROR] %s\n", msg)
		return fmt.Errorf("%s", msg)
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
				err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback aborts the active transaction.
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return fmt.Errorf("cannot roll back transaction: no transaction is active (db #%d)",
			db.id)
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes performed
// during the transaction permanent.
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return fmt.Errorf("cannot commit transaction: no transaction is active (db #%d)",
			db.id)
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// ConfigAdd stores a new Config in the database.
func (db *Database) ConfigAdd(c *objects.Config) error {
	const qid query.ID = query.ConfigAdd
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var now = time.Now()

EXEC_QUERY:
	if _, err = stmt.Exec(
		c.ID,
		c.URL,
		c.Note,
		c.Mode,
		c.Rule.Type,
		c.Rule.Days,
		c.Rule.FirstTrigger,
		now.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Config %q (%s) to database: %s\n",
			c.ID,
			c.URL,
			err.Error())
		return err
	}

	c.Changed = now
	return nil
} // func (db *Database) ConfigAdd(c *objects.Config) error

// ConfigUpdate updates an existing Config.
func (db *Database) ConfigUpdate(c *objects.Config) error {
	const qid query.ID = query.ConfigUpdate
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var now = time.Now()

EXEC_QUERY:
	if _, err = stmt.Exec(
		c.URL,
		c.Note,
		c.Mode,
		c.Rule.Type,
		c.Rule.Days,
		c.Rule.FirstTrigger,
		now.Unix(),
		c.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot update Config %q (%s): %s\n",
			c.ID,
			c.URL,
			err.Error())
		return err
	}

	c.Changed = now
	return nil
} // func (db *Database) ConfigUpdate(c *objects.Config) error

// ConfigDelete removes a Config and its trigger record.
func (db *Database) ConfigDelete(id string) error {
	var (
		err     error
		txOwner bool
	)

	if db.tx == nil {
		if err = db.Begin(); err != nil {
			return err
		}
		txOwner = true
	}

	if err = db.configRemove(id); err == nil {
		err = db.TriggerClear(id)
	}

	if txOwner {
		if err != nil {
			if rbErr := db.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
		return db.Commit()
	}

	return err
} // func (db *Database) ConfigDelete(id string) error

func (db *Database) configRemove(id string) error {
	const qid query.ID = query.ConfigDelete
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Config %q: %s\n",
			id,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) configRemove(id string) error

// ConfigGetAll loads all Configs, ordered by URL.
func (db *Database) ConfigGetAll() ([]objects.Config, error) {
	const qid query.ID = query.ConfigGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query all Configs: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var list = make([]objects.Config, 0, 8)

	for rows.Next() {
		var (
			c                   objects.Config
			cmode, rtype, stamp int64
		)

		if err = rows.Scan(
			&c.ID,
			&c.URL,
			&c.Note,
			&cmode,
			&rtype,
			&c.Rule.Days,
			&c.Rule.FirstTrigger,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		c.Mode = mode.ID(cmode)
		c.Rule.Type = ruletype.ID(rtype)
		c.Changed = time.Unix(stamp, 0)

		list = append(list, c)
	}

	return list, nil
} // func (db *Database) ConfigGetAll() ([]objects.Config, error)

// ConfigGetByID loads the Config with the given ID, or nil if no such
// Config exists.
func (db *Database) ConfigGetByID(id string) (*objects.Config, error) {
	const qid query.ID = query.ConfigGetByID
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Config %q: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			c                   = objects.Config{ID: id}
			cmode, rtype, stamp int64
		)

		if err = rows.Scan(
			&c.URL,
			&c.Note,
			&cmode,
			&rtype,
			&c.Rule.Days,
			&c.Rule.FirstTrigger,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		c.Mode = mode.ID(cmode)
		c.Rule.Type = ruletype.ID(rtype)
		c.Changed = time.Unix(stamp, 0)

		return &c, nil
	}

	return nil, nil
} // func (db *Database) ConfigGetByID(id string) (*objects.Config, error)

// ConfigReplaceAll replaces the entire list of Configs, as when
// importing an exported list. Trigger records of Configs that do not
// appear in the new list are pruned; records of surviving Configs are
// kept, so a re-imported Config does not fire again the same day.
func (db *Database) ConfigReplaceAll(list []objects.Config) error {
	var (
		err     error
		txOwner bool
	)

	if db.tx == nil {
		if err = db.Begin(); err != nil {
			return err
		}
		txOwner = true
	}

	err = db.configClear()

	if err == nil {
		for idx := range list {
			if err = db.ConfigAdd(&list[idx]); err != nil {
				break
			}
		}
	}

	if err == nil {
		err = db.triggerPrune()
	}

	if txOwner {
		if err != nil {
			if rbErr := db.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
		return db.Commit()
	}

	return err
} // func (db *Database) ConfigReplaceAll(list []objects.Config) error

func (db *Database) configClear() error {
	const qid query.ID = query.ConfigClear
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear Config list: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) configClear() error

func (db *Database) triggerPrune() error {
	const qid query.ID = query.TriggerPrune
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot prune orphaned trigger records: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) triggerPrune() error

// TriggerGet returns the day the Config with the given ID last fired,
// or an empty string if it never has.
func (db *Database) TriggerGet(id string) (string, error) {
	const qid query.ID = query.TriggerGet
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return "", err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query trigger record for %q: %s\n",
			id,
			err.Error())
		return "", err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var day string

		if err = rows.Scan(&day); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return "", err
		}

		return day, nil
	}

	return "", nil
} // func (db *Database) TriggerGet(id string) (string, error)

// TriggerSet records the day the Config with the given ID last fired.
// An empty day means today.
func (db *Database) TriggerSet(id, day string) error {
	const qid query.ID = query.TriggerSet
	var (
		err  error
		stmt *sql.Stmt
	)

	if day == "" {
		day = common.Today()
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(id, day); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set trigger record for %q to %s: %s\n",
			id,
			day,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) TriggerSet(id, day string) error

// TriggerClear removes the trigger record for a single Config.
func (db *Database) TriggerClear(id string) error {
	const qid query.ID = query.TriggerClear
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear trigger record for %q: %s\n",
			id,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) TriggerClear(id string) error

// TriggerClearAll removes all trigger records.
func (db *Database) TriggerClearAll() error {
	const qid query.ID = query.TriggerClearAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear trigger records: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) TriggerClearAll() error

// TriggerClearDay removes all trigger records for the given day, i.e.
// "reset today" when called with the current day.
func (db *Database) TriggerClearDay(day string) error {
	const qid query.ID = query.TriggerClearDay
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(day); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot clear trigger records for %s: %s\n",
			day,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) TriggerClearDay(day string) error

// StateGet looks up a value in the state table. The second return
// value tells if the key was present at all.
func (db *Database) StateGet(key string) (string, bool, error) {
	const qid query.ID = query.StateGet
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return "", false, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(key); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query state key %q: %s\n",
			key,
			err.Error())
		return "", false, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var value string

		if err = rows.Scan(&value); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return "", false, err
		}

		return value, true, nil
	}

	return "", false, nil
} // func (db *Database) StateGet(key string) (string, bool, error)

// StateSet stores a value in the state table.
func (db *Database) StateSet(key, value string) error {
	const qid query.ID = query.StateSet
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if _, err = stmt.Exec(key, value); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set state key %q to %q: %s\n",
			key,
			value,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) StateSet(key, value string) error

// CheckFlagGet returns the needs-check flag.
func (db *Database) CheckFlagGet() (bool, error) {
	var (
		err   error
		value string
	)

	if value, _, err = db.StateGet(keyNeedCheck); err != nil {
		return false, err
	}

	return value == "1", nil
} // func (db *Database) CheckFlagGet() (bool, error)

// CheckFlagSet sets or clears the needs-check flag.
func (db *Database) CheckFlagSet(flag bool) error {
	var value = "0"

	if flag {
		value = "1"
	}

	return db.StateSet(keyNeedCheck, value)
} // func (db *Database) CheckFlagSet(flag bool) error

// LastDayGet returns the last calendar day the system observed, empty
// if it never recorded one.
func (db *Database) LastDayGet() (string, error) {
	var (
		err   error
		value string
	)

	if value, _, err = db.StateGet(keyLastDay); err != nil {
		return "", err
	}

	return value, nil
} // func (db *Database) LastDayGet() (string, error)

// LastDaySet records the last calendar day the system observed.
func (db *Database) LastDaySet(day string) error {
	return db.StateSet(keyLastDay, day)
} // func (db *Database) LastDaySet(day string) error

// LogLevelGet returns the persisted minimum log level, empty if none
// was ever stored.
func (db *Database) LogLevelGet() (string, error) {
	var (
		err   error
		value string
	)

	if value, _, err = db.StateGet(keyLogLevel); err != nil {
		return "", err
	}

	return value, nil
} // func (db *Database) LogLevelGet() (string, error)

// LogLevelSet persists the minimum log level.
func (db *Database) LogLevelSet(level string) error {
	return db.StateSet(keyLogLevel, level)
} // func (db *Database) LogLevelSet(level string) error
