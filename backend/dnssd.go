// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 22:05:11 krylon>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blicero/mnemosyne/common"
	"github.com/grandcat/zeroconf"
)

// The Daemon announces itself via DNS-SD so watchers and the control
// client on other machines can find it without configuration.

const (
	srvService = "_http._tcp"
	srvDomain  = "local."
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

// parsePort extracts the TCP port from a listen address. ParseUint
// with a bitSize of 16 covers the whole port space, a signed parse
// would reject anything above 32767.
func parsePort(addr string) (int, error) {
	var match []string

	if match = addrPat.FindStringSubmatch(addr); match == nil {
		return 0, fmt.Errorf("Cannot extract HTTP port from address %q",
			addr)
	}

	var (
		err  error
		port uint64
	)

	if port, err = strconv.ParseUint(match[1], 10, 16); err != nil {
		return 0, err
	}

	return int(port), nil
} // func parsePort(addr string) (int, error)

func (d *Daemon) initDNSSd() error {
	var (
		err  error
		port int
		srv  *zeroconf.Server
	)

	if port, err = parsePort(d.web.Addr); err != nil {
		d.log.Printf("[ERROR] Cannot parse HTTP port from server address %q: %s\n",
			d.web.Addr,
			err.Error())
		return err
	}

	var txt = []string{"txtv=0"}

	var instanceName = fmt.Sprintf("%s@%s",
		common.AppName,
		d.hostname)

	if srv, err = zeroconf.Register(instanceName, srvService, srvDomain, port, txt, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error

func (d *Daemon) quitDNSSd() {
	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}
} // func (d *Daemon) quitDNSSd()
