// /home/krylon/go/src/github.com/blicero/mnemosyne/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-15 20:02:11 krylon>

package database

import (
	"sync"

	"github.com/blicero/mnemosyne/common"
)

// Pool is a pool of database connections.
type Pool struct {
	lock sync.Mutex
	pool []*Database
}

// NewPool creates a Pool of database connections.
func NewPool(cnt int) (*Pool, error) {
	var pool = &Pool{
		pool: make([]*Database, 0, cnt),
	}

	for i := 0; i < cnt; i++ {
		var (
			err error
			db  *Database
		)

		if db, err = Open(common.DbPath); err != nil {
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the pool.
// If the pool is empty, a fresh connection is opened.
func (p *Pool) Get() *Database {
	p.lock.Lock()

	if cnt := len(p.pool); cnt > 0 {
		var db = p.pool[cnt-1]
		p.pool = p.pool[:cnt-1]
		p.lock.Unlock()
		return db
	}

	p.lock.Unlock()

	var (
		err error
		db  *Database
	)

	if db, err = Open(common.DbPath); err != nil {
		return nil
	}

	return db
} // func (p *Pool) Get() *Database

// Put returns a database connection to the pool.
func (p *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	p.lock.Lock()
	p.pool = append(p.pool, db)
	p.lock.Unlock()
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the pool.
func (p *Pool) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	for _, db := range p.pool {
		if e := db.Close(); e != nil && err == nil {
			err = e
		}
	}

	p.pool = p.pool[:0]
	return err
} // func (p *Pool) Close() error
