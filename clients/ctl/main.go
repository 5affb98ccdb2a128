// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/ctl/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-05-19 18:42:17 krylon>

// ctl is the command line client for managing Configs: listing,
// adding, editing, removing, resetting trigger records, and moving
// whole Config lists in and out of the backend.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blicero/mnemosyne/clients/clientlib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/mode"
	"github.com/blicero/mnemosyne/objects/ruletype"
	"github.com/urfave/cli"
)

func main() {
	var app = cli.NewApp()

	app.Name = strings.ToLower(common.AppName) + "ctl"
	app.Usage = fmt.Sprintf("Manage %s reminder Configs", common.AppName)
	app.Version = common.Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "server, s",
			Value: fmt.Sprintf("localhost:%d", common.DefaultPort),
			Usage: "Address of the backend to connect to",
		},
		cli.StringFlag{
			Name:  "appdir, d",
			Value: common.BaseDir,
			Usage: "The directory where application-specific files live",
		},
	}
	app.Before = setupDirectory

	var editFlags = []cli.Flag{
		cli.StringFlag{
			Name:  "url, u",
			Usage: "The URL to check",
		},
		cli.StringFlag{
			Name:  "note, n",
			Usage: "A note to display when the reminder fires",
		},
		cli.StringFlag{
			Name:  "mode, m",
			Usage: "Delivery mode, auto or toast",
		},
		cli.StringFlag{
			Name:  "rule, r",
			Usage: "Trigger rule, daily, weekday, or interval",
		},
		cli.IntFlag{
			Name:  "days",
			Usage: "Number of days between triggers (interval rule only)",
		},
		cli.StringFlag{
			Name:  "first",
			Usage: "Anchor day (YYYY-MM-DD) for the interval rule",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List all Configs",
			Action:  cmdList,
		},
		{
			Name:   "add",
			Usage:  "Add a new Config",
			Flags:  editFlags,
			Action: cmdAdd,
		},
		{
			Name:      "edit",
			Usage:     "Edit an existing Config",
			ArgsUsage: "<id>",
			Flags:     editFlags,
			Action:    cmdEdit,
		},
		{
			Name:      "rm",
			Aliases:   []string{"del"},
			Usage:     "Remove a Config",
			ArgsUsage: "<id>",
			Action:    cmdRemove,
		},
		{
			Name:      "reset",
			Usage:     "Clear trigger records, so Configs can fire again",
			ArgsUsage: "[<id>]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, a",
					Usage: "Clear the records of all Configs",
				},
				cli.BoolFlag{
					Name:  "today, t",
					Usage: "Clear only records set today",
				},
			},
			Action: cmdReset,
		},
		{
			Name:      "export",
			Usage:     "Write all Configs as JSON to a file (or stdout)",
			ArgsUsage: "[<file>]",
			Action:    cmdExport,
		},
		{
			Name:      "import",
			Usage:     "Replace all Configs with a list read from a JSON file",
			ArgsUsage: "<file>",
			Action:    cmdImport,
		},
		{
			Name:   "status",
			Usage:  "Display a summary of the backend's state",
			Action: cmdStatus,
		},
		{
			Name:   "check-now",
			Usage:  "Ask the backend for an evaluation pass right away",
			Action: cmdCheckNow,
		},
		{
			Name:      "loglevel",
			Usage:     "Adjust the backend's log level",
			ArgsUsage: "<level>",
			Action:    cmdLogLevel,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"%s: %s\n",
			app.Name,
			err.Error())
		os.Exit(1)
	}
}

func setupDirectory(ctx *cli.Context) error {
	var appDir = ctx.GlobalString("appdir")

	if appDir == common.BaseDir {
		return nil
	}

	return common.SetBaseDir(appDir)
} // func setupDirectory(ctx *cli.Context) error

func mkClient(ctx *cli.Context) (*clientlib.Client, error) {
	return clientlib.NewClient(ctx.GlobalString("server"))
} // func mkClient(ctx *cli.Context) (*clientlib.Client, error)

func cmdList(ctx *cli.Context) error {
	var (
		err     error
		c       *clientlib.Client
		configs []objects.Config
	)

	if c, err = mkClient(ctx); err != nil {
		return err
	} else if configs, err = c.FetchConfigs(); err != nil {
		return err
	}

	for idx := range configs {
		var (
			cfg  = &configs[idx]
			last string
		)

		if last, err = c.GetTrigger(cfg.ID); err != nil {
			return err
		} else if last == "" {
			last = "never"
		}

		fmt.Printf("%-36s  %-8s  %-20s  last %s\n    %s\n",
			cfg.ID,
			cfg.Mode,
			cfg.Rule.String(),
			last,
			cfg.URL)

		if cfg.Note != "" {
			fmt.Printf("    %s\n", cfg.Note)
		}
	}

	return nil
} // func cmdList(ctx *cli.Context) error

func applyFlags(ctx *cli.Context, cfg *objects.Config) error {
	var err error

	if ctx.IsSet("url") {
		cfg.URL = ctx.String("url")
	}

	if ctx.IsSet("note") {
		cfg.Note = ctx.String("note")
	}

	if ctx.IsSet("mode") {
		if cfg.Mode, err = mode.Parse(ctx.String("mode")); err != nil {
			return err
		}
	}

	if ctx.IsSet("rule") {
		if cfg.Rule.Type, err = ruletype.Parse(ctx.String("rule")); err != nil {
			return err
		}
	}

	if ctx.IsSet("days") {
		cfg.Rule.Days = ctx.Int("days")
	}

	if ctx.IsSet("first") {
		cfg.Rule.FirstTrigger = ctx.String("first")
	}

	return cfg.Validate()
} // func applyFlags(ctx *cli.Context, cfg *objects.Config) error

func cmdAdd(ctx *cli.Context) error {
	var (
		err error
		c   *clientlib.Client
		id  string
		cfg objects.Config
	)

	if !ctx.IsSet("url") {
		return errors.New("no URL provided")
	} else if err = applyFlags(ctx, &cfg); err != nil {
		return err
	} else if c, err = mkClient(ctx); err != nil {
		return err
	} else if id, err = c.AddConfig(&cfg); err != nil {
		return err
	}

	fmt.Printf("Added Config %s\n", id)
	return nil
} // func cmdAdd(ctx *cli.Context) error

func cmdEdit(ctx *cli.Context) error {
	var (
		err     error
		c       *clientlib.Client
		id      = ctx.Args().First()
		configs []objects.Config
		cfg     *objects.Config
	)

	if id == "" {
		return errors.New("no Config ID provided")
	} else if c, err = mkClient(ctx); err != nil {
		return err
	} else if configs, err = c.FetchConfigs(); err != nil {
		return err
	}

	for idx := range configs {
		if configs[idx].ID == id {
			cfg = &configs[idx]
			break
		}
	}

	if cfg == nil {
		return fmt.Errorf("no Config with ID %q", id)
	} else if err = applyFlags(ctx, cfg); err != nil {
		return err
	} else if err = c.UpdateConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Updated Config %s\n", id)
	return nil
} // func cmdEdit(ctx *cli.Context) error

func cmdRemove(ctx *cli.Context) error {
	var (
		err error
		c   *clientlib.Client
		id  = ctx.Args().First()
	)

	if id == "" {
		return errors.New("no Config ID provided")
	} else if c, err = mkClient(ctx); err != nil {
		return err
	} else if err = c.DeleteConfig(id); err != nil {
		return err
	}

	fmt.Printf("Removed Config %s\n", id)
	return nil
} // func cmdRemove(ctx *cli.Context) error

func cmdReset(ctx *cli.Context) error {
	var (
		err error
		c   *clientlib.Client
		id  = ctx.Args().First()
	)

	if c, err = mkClient(ctx); err != nil {
		return err
	}

	switch {
	case ctx.Bool("today"):
		err = c.ResetToday()
	case ctx.Bool("all"):
		err = c.ResetAll()
	case id != "":
		err = c.ResetTrigger(id)
	default:
		err = errors.New("provide a Config ID, --all, or --today")
	}

	return err
} // func cmdReset(ctx *cli.Context) error

func cmdExport(ctx *cli.Context) error {
	var (
		err  error
		c    *clientlib.Client
		doc  []byte
		path = ctx.Args().First()
	)

	if c, err = mkClient(ctx); err != nil {
		return err
	} else if doc, err = c.Export(); err != nil {
		return err
	}

	if path == "" || path == "-" {
		fmt.Println(string(doc))
		return nil
	}

	return os.WriteFile(path, doc, 0644)
} // func cmdExport(ctx *cli.Context) error

func cmdImport(ctx *cli.Context) error {
	var (
		err  error
		c    *clientlib.Client
		doc  []byte
		path = ctx.Args().First()
	)

	if path == "" {
		return errors.New("no file provided")
	} else if doc, err = os.ReadFile(path); err != nil {
		return err
	} else if c, err = mkClient(ctx); err != nil {
		return err
	}

	return c.Import(doc)
} // func cmdImport(ctx *cli.Context) error

func cmdStatus(ctx *cli.Context) error {
	var (
		err   error
		c     *clientlib.Client
		reply *objects.StatusReply
	)

	if c, err = mkClient(ctx); err != nil {
		return err
	} else if reply, err = c.Status(); err != nil {
		return err
	}

	fmt.Printf(`Backend at %s
Today:           %s
Configs:         %d
Fired today:     %d
Due:             %d
Check pending:   %t
Log level:       %s
`,
		ctx.GlobalString("server"),
		reply.Today,
		reply.Total,
		reply.TriggeredToday,
		reply.Pending,
		reply.NeedsCheck,
		reply.LogLevel)

	return nil
} // func cmdStatus(ctx *cli.Context) error

func cmdCheckNow(ctx *cli.Context) error {
	var (
		err error
		c   *clientlib.Client
	)

	if c, err = mkClient(ctx); err != nil {
		return err
	} else if err = c.DayPoll(); err != nil {
		return err
	}

	return c.CheckRequest()
} // func cmdCheckNow(ctx *cli.Context) error

func cmdLogLevel(ctx *cli.Context) error {
	var (
		err   error
		c     *clientlib.Client
		level = ctx.Args().First()
	)

	if level == "" {
		return errors.New("no log level provided")
	} else if c, err = mkClient(ctx); err != nil {
		return err
	}

	return c.SetLogLevel(strings.ToUpper(level))
} // func cmdLogLevel(ctx *cli.Context) error
