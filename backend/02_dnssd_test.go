// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/02_dnssd_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 05. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-22 18:21:47 krylon>

package backend

import "testing"

func TestParsePort(t *testing.T) {
	type testCase struct {
		addr      string
		port      int
		expectErr bool
	}

	var cases = []testCase{
		{addr: "localhost:4711", port: 4711},
		{addr: "[::1]:42817", port: 42817},
		{addr: "0.0.0.0:65535", port: 65535},
		{addr: "localhost", expectErr: true},
		{addr: "localhost:70000", expectErr: true},
		{addr: "localhost:horst", expectErr: true},
	}

	for _, c := range cases {
		var (
			err  error
			port int
		)

		if port, err = parsePort(c.addr); err != nil {
			if !c.expectErr {
				t.Errorf("Cannot parse port from %q: %s",
					c.addr,
					err.Error())
			}
		} else if c.expectErr {
			t.Errorf("Parsing the port from %q should have failed, got %d",
				c.addr,
				port)
		} else if port != c.port {
			t.Errorf("Unexpected port parsed from %q: %d (expected %d)",
				c.addr,
				port,
				c.port)
		}
	}
} // func TestParsePort(t *testing.T)
