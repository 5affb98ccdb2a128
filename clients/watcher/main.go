// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/watcher/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-18 20:14:41 krylon>

// The watcher is the client that periodically asks the backend if an
// evaluation pass is owed and delivers the Configs that are due.
// SIGUSR1 nudges it to run a pass right away.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/mnemosyne/clients/watcher/watch"
	"github.com/blicero/mnemosyne/common"
)

func main() {
	fmt.Printf("%s watcher %s\n",
		common.AppName,
		common.Version)

	var (
		err                      error
		w                        *watch.Watcher
		appDir, addr, sessionURL string
		interval                 time.Duration
	)

	flag.StringVar(
		&appDir,
		"appdir",
		common.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&addr,
		"server",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the backend to connect to")

	flag.StringVar(
		&sessionURL,
		"url",
		"",
		"URL the current session is looking at, if any")

	flag.DurationVar(
		&interval,
		"interval",
		time.Minute*5,
		"How long to wait between passes")

	flag.Parse()

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set application directory to %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	}

	if w, err = watch.New(addr, sessionURL, interval); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Watcher: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGUSR1)

	go w.Run()

	for w.IsAlive() {
		select {
		case sig := <-sigQ:
			switch sig {
			case syscall.SIGUSR1:
				w.Wake()
			default:
				fmt.Printf("Quitting on signal %s\n", sig)
				w.Stop()
			}
		case <-ticker.C:
			continue
		}
	}
}
