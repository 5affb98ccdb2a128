// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-17 18:56:40 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the backend. Both the watcher and the control client
// sit on top of this package.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/pquerna/ffjson/ffjson"
)

// Client implements the fundamental communication with the backend.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client talking to the backend at the given address.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse("http://" + srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse server address %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's logger, so applications built on top
// of the Client do not need to open a second log.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) addr(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) addr(path string) string

func (c *Client) getJSON(path string, dst interface{}) error {
	var (
		err  error
		buf  bytes.Buffer
		hres *http.Response
		full = c.addr(path)
	)

	if hres, err = c.Client.Get(full); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			full,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		err = fmt.Errorf("Unexpected status from %s: %s",
			full,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return err
	} else if _, err = io.Copy(&buf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read response body from %s: %s\n",
			full,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(buf.Bytes(), dst); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize response from %s: %s\n",
			full,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) getJSON(path string, dst interface{}) error

func (c *Client) postForm(path string, values url.Values) (*objects.Response, error) {
	var (
		err  error
		msg  string
		buf  bytes.Buffer
		hres *http.Response
		ores objects.Response
		full = c.addr(path)
	)

	if hres, err = c.Client.PostForm(full, values); err != nil {
		c.log.Printf("[ERROR] Failed to POST to %s: %s\n",
			full,
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			full,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	} else if _, err = io.Copy(&buf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read response body from %s: %s\n",
			full,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(buf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			full,
			err.Error())
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			full,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		full,
		ores.Message)

	return &ores, nil
} // func (c *Client) postForm(path string, values url.Values) (*objects.Response, error)

// FetchConfigs asks the backend for all stored Configs.
func (c *Client) FetchConfigs() ([]objects.Config, error) {
	var (
		err     error
		configs []objects.Config
	)

	if err = c.getJSON("/config/all", &configs); err != nil {
		return nil, err
	}

	return configs, nil
} // func (c *Client) FetchConfigs() ([]objects.Config, error)

// AddConfig submits a new Config to the backend and returns the ID
// the backend assigned to it.
func (c *Client) AddConfig(cfg *objects.Config) (string, error) {
	var (
		err  error
		buf  []byte
		ores *objects.Response
	)

	if buf, err = ffjson.Marshal(cfg); err != nil {
		c.log.Printf("[ERROR] Cannot serialize Config: %s\n",
			err.Error())
		return "", err
	}

	defer ffjson.Pool(buf)

	if ores, err = c.postForm("/config/add", url.Values{"config": {string(buf)}}); err != nil {
		return "", err
	}

	return ores.Message, nil
} // func (c *Client) AddConfig(cfg *objects.Config) (string, error)

// UpdateConfig replaces the stored Config bearing cfg's ID.
func (c *Client) UpdateConfig(cfg *objects.Config) error {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(cfg); err != nil {
		c.log.Printf("[ERROR] Cannot serialize Config: %s\n",
			err.Error())
		return err
	}

	defer ffjson.Pool(buf)

	_, err = c.postForm(
		fmt.Sprintf("/config/%s/update", cfg.ID),
		url.Values{"config": {string(buf)}})
	return err
} // func (c *Client) UpdateConfig(cfg *objects.Config) error

// DeleteConfig removes the Config with the given ID.
func (c *Client) DeleteConfig(id string) error {
	var _, err = c.postForm(
		fmt.Sprintf("/config/%s/delete", id),
		url.Values{})
	return err
} // func (c *Client) DeleteConfig(id string) error

// ResetTrigger clears the trigger record of a single Config.
func (c *Client) ResetTrigger(id string) error {
	var _, err = c.postForm(
		fmt.Sprintf("/config/%s/reset", id),
		url.Values{})
	return err
} // func (c *Client) ResetTrigger(id string) error

// ResetAll clears the trigger records of all Configs.
func (c *Client) ResetAll() error {
	var _, err = c.postForm("/config/reset", url.Values{})
	return err
} // func (c *Client) ResetAll() error

// ResetToday clears all trigger records that were set today.
func (c *Client) ResetToday() error {
	var _, err = c.postForm("/trigger/today/reset", url.Values{})
	return err
} // func (c *Client) ResetToday() error

// Export fetches all Configs as a pretty-printed JSON document.
func (c *Client) Export() ([]byte, error) {
	var (
		err  error
		buf  bytes.Buffer
		hres *http.Response
		full = c.addr("/config/export")
	)

	if hres, err = c.Client.Get(full); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			full,
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		err = fmt.Errorf("Unexpected status from %s: %s",
			full,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return nil, err
	} else if _, err = io.Copy(&buf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read response body from %s: %s\n",
			full,
			err.Error())
		return nil, err
	}

	return buf.Bytes(), nil
} // func (c *Client) Export() ([]byte, error)

// Import submits a JSON document holding a list of Configs, replacing
// the backend's whole stored list.
func (c *Client) Import(doc []byte) error {
	var _, err = c.postForm("/config/import", url.Values{"configs": {string(doc)}})
	return err
} // func (c *Client) Import(doc []byte) error

// CheckPending asks the backend if an evaluation pass is owed.
func (c *Client) CheckPending() (*objects.CheckReply, error) {
	var (
		err   error
		reply objects.CheckReply
	)

	if err = c.getJSON("/check/pending", &reply); err != nil {
		return nil, err
	}

	return &reply, nil
} // func (c *Client) CheckPending() (*objects.CheckReply, error)

// CheckRequest asks the backend to raise the needs-check flag, so all
// watchers run an evaluation pass on their next wakeup.
func (c *Client) CheckRequest() error {
	var _, err = c.postForm("/check/request", url.Values{})
	return err
} // func (c *Client) CheckRequest() error

// CheckComplete tells the backend an evaluation pass has finished.
func (c *Client) CheckComplete() error {
	var _, err = c.postForm("/check/complete", url.Values{})
	return err
} // func (c *Client) CheckComplete() error

// DayPoll asks the backend to check for a day rollover right now.
func (c *Client) DayPoll() error {
	var _, err = c.postForm("/day/poll", url.Values{})
	return err
} // func (c *Client) DayPoll() error

// OpenURL asks the backend to open the given URL in the user's browser.
func (c *Client) OpenURL(rawURL string) error {
	var _, err = c.postForm("/url/open", url.Values{"url": {rawURL}})
	return err
} // func (c *Client) OpenURL(rawURL string) error

// GetTrigger returns the last day the given Config fired, empty if it
// never has.
func (c *Client) GetTrigger(id string) (string, error) {
	var (
		err   error
		reply objects.TriggerReply
	)

	if err = c.getJSON(fmt.Sprintf("/trigger/%s/get", id), &reply); err != nil {
		return "", err
	}

	return reply.Day, nil
} // func (c *Client) GetTrigger(id string) (string, error)

// SetTrigger records the given day as the last day the Config fired.
// An empty day means today.
func (c *Client) SetTrigger(id, day string) error {
	var _, err = c.postForm(
		fmt.Sprintf("/trigger/%s/set", id),
		url.Values{"day": {day}})
	return err
} // func (c *Client) SetTrigger(id, day string) error

// Status fetches a summary of the backend's state.
func (c *Client) Status() (*objects.StatusReply, error) {
	var (
		err   error
		reply objects.StatusReply
	)

	if err = c.getJSON("/status", &reply); err != nil {
		return nil, err
	}

	return &reply, nil
} // func (c *Client) Status() (*objects.StatusReply, error)

// SetLogLevel adjusts the backend's stored log level.
func (c *Client) SetLogLevel(level string) error {
	var _, err = c.postForm("/loglevel", url.Values{"level": {level}})
	return err
} // func (c *Client) SetLogLevel(level string) error
