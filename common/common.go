// /home/krylon/go/src/github.com/blicero/mnemosyne/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-16 21:44:18 krylon>

// Package common provides constants and functions used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug, if set, causes the application to log additional messages.
// AppName is the name of the application, Version is its version,
// TimestampFormat is the format string used to render timestamps,
// DayFormat renders a date as a plain calendar day, which is the
// resolution the trigger logic works at.
const (
	Debug                 = true
	AppName               = "Mnemosyne"
	Version               = "0.3.1"
	TimestampFormat       = "2006-01-02 15:04:05"
	TimestampFormatMinute = "2006-01-02 15:04"
	TimestampFormatSubSec = "2006-01-02 15:04:05.0000 MST"
	DayFormat             = "2006-01-02"
	DefaultPort           = 4711
)

// LogLevels are the log levels used by the logging facility.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines the minimum log level per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(logdomain.AllDomains()))

// MinLogLevel is the minimum level a log message must have to get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

var (
	filterLock sync.Mutex
	filters    []*logutils.LevelFilter
)

func init() {
	for _, dom := range logdomain.AllDomains() {
		PackageLevels[dom] = MinLogLevel
	}
}

// SetLogLevel adjusts the minimum log level, both for Loggers that
// already exist and for any created afterwards.
func SetLogLevel(level logutils.LogLevel) {
	filterLock.Lock()
	MinLogLevel = level
	for _, dom := range logdomain.AllDomains() {
		PackageLevels[dom] = level
	}
	for _, f := range filters {
		f.SetMinLevel(level)
	}
	filterLock.Unlock()
} // func SetLogLevel(level logutils.LogLevel)

// BaseDir is the folder where all the application-specific files are stored.
// LogPath is the path of the log file, DbPath the path of the database.
var (
	BaseDir = filepath.Join(
		os.Getenv("HOME"),
		fmt.Sprintf(".%s.d", strings.ToLower(AppName)))
	LogPath = filepath.Join(
		BaseDir,
		fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath = filepath.Join(
		BaseDir,
		fmt.Sprintf("%s.db", strings.ToLower(AppName)))
)

// SetBaseDir sets the BaseDir and related variables.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(
		BaseDir,
		fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath = filepath.Join(
		BaseDir,
		fmt.Sprintf("%s.db", strings.ToLower(AppName)))

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// GetLogger tries to create a Logger for the given log source.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	var name = fmt.Sprintf("%s.%s ",
		AppName,
		dom)

	if logfile, err = os.OpenFile(LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		var msg = fmt.Sprintf("Error opening log file: %s\n", err.Error())
		fmt.Println(msg)
		return nil, fmt.Errorf("%s", msg)
	}

	filterLock.Lock()
	var writer = io.MultiWriter(os.Stdout, logfile)
	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}
	filters = append(filters, filter)
	filterLock.Unlock()

	var logger = log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir if it does not exist.
func InitApp() error {
	var err error

	if err = os.Mkdir(BaseDir, 0700); err != nil {
		if !os.IsExist(err) {
			var msg = fmt.Sprintf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
			return fmt.Errorf("%s", msg)
		}
	}

	return nil
} // func InitApp() error

// GetUUID returns a randomized UUID as a string.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string

// Today returns the current calendar day, rendered per DayFormat.
func Today() string {
	return time.Now().Format(DayFormat)
} // func Today() string
