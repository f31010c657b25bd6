package main

import (
	"fmt"
	"os"

	"github.com/QuangTung97/buddyblock/buddysim"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

const (
	configFlagName   = "config"
	capacityFlagName = "capacity"
	logLevelFlagName = "log-level"
	noColorFlagName  = "no-color"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  configFlagName,
			Usage: "TOML config file",
		},
		&cli.IntFlag{
			Name:  capacityFlagName,
			Usage: "size of the simulated address space, must be a power of two",
		},
		&cli.StringFlag{
			Name:  logLevelFlagName,
			Usage: "logrus level: panic, fatal, error, warn, info, debug, trace",
		},
		&cli.BoolFlag{
			Name:  noColorFlagName,
			Usage: "disable colored status output",
		},
	}
}

func loadConfig(ctx *cli.Context) (buddysim.Config, error) {
	var o buddysim.Overrides
	if ctx.IsSet(capacityFlagName) {
		capacity := ctx.Int(capacityFlagName)
		o.Capacity = &capacity
	}
	if ctx.IsSet(logLevelFlagName) {
		level := ctx.String(logLevelFlagName)
		o.LogLevel = &level
	}
	o.NoColor = ctx.Bool(noColorFlagName)

	return buddysim.ResolveConfig(ctx.String(configFlagName), o)
}

func replAction(ctx *cli.Context) error {
	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := conf.NewLogger(ctx.App.ErrWriter)
	if err != nil {
		return err
	}
	return buddysim.RunREPL(os.Stdin, ctx.App.Writer, conf, logger)
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("run: expected exactly one script file")
	}

	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := conf.NewLogger(ctx.App.ErrWriter)
	if err != nil {
		return err
	}

	alloc, err := conf.NewAllocator(logger)
	if err != nil {
		return err
	}

	f, err := os.Open(ctx.Args().First())
	if err != nil {
		return errors.Wrap(err, "open script")
	}
	defer func() { _ = f.Close() }()

	out := ctx.App.Writer
	s := buddysim.NewSession(alloc, out, buddysim.ShouldColor(out, conf.Color))
	return s.RunScript(f)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "buddysim",
		Usage: "simulate a buddy-block memory allocator",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "interactive allocate / free / status menu",
				Action: replAction,
			},
			{
				Name:      "run",
				Usage:     "execute a script of alloc, free, status and stats lines",
				ArgsUsage: "<script>",
				Action:    runAction,
			},
		},
		Action: replAction,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
