// Package cli implements the osver command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/reoring/osver"
	"github.com/reoring/osver/hostos"
	"github.com/reoring/osver/i18n"
	"github.com/reoring/osver/internal/config"
)

const name = "osver"

// overridden during build with ldflags
var version = "dev"

// app carries state shared by the commands of one invocation.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	host   func() (osver.Version, error)
}

// Option adjusts the command tree, mostly for tests.
type Option func(*app)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		a.in, a.out, a.errOut = in, out, errOut
		a.log.SetOutput(errOut)
	}
}

// WithHostProbe replaces hostos.Current.
func WithHostProbe(fn func() (osver.Version, error)) Option {
	return func(a *app) { a.host = fn }
}

// New builds the root command.
func New(opts ...Option) *cli.Command {
	return newApp(opts).command()
}

func newApp(opts []Option) *app {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	a := &app{cfg: config.Default(), log: log, in: os.Stdin, out: os.Stdout, errOut: os.Stderr, host: hostos.Current}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Parse, compare and convert operating system versions",
		Version:   version,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Reader:    a.in,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (.toml, .yaml); defaults to ./.osver.toml or ./.osver.yaml when present",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars(config.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "wire shape: string, object or array",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "renderer: text, json or yaml",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.parseCmd(),
			a.encodeCmd(),
			a.decodeCmd(),
			a.compareCmd(),
			a.sortCmd(),
			a.hostCmd(),
			a.schemaCmd(),
		},
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, opts ...Option) int {
	a := newApp(opts)
	if err := a.command().Run(ctx, args); err != nil {
		a.log.WithError(err).Debug("command failed")
		fmt.Fprintln(a.errOut, "error:", err)
		return 1
	}
	return 0
}

// before loads configuration (file, environment, then flags) and configures
// logging and message language.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(wd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("format") {
		f, err := osver.ParseEncodingFormat(cmd.String("format"))
		if err != nil {
			return ctx, err
		}
		cfg.Format = f
	}
	if cmd.IsSet("output") {
		if err := config.ValidateOutput(cmd.String("output")); err != nil {
			return ctx, err
		}
		cfg.Output = cmd.String("output")
	}
	if s := cmd.String("log-level"); s != "" {
		lvl, err := logrus.ParseLevel(s)
		if err != nil {
			return ctx, err
		}
		cfg.LogLevel = lvl.String()
	}
	a.cfg = cfg
	a.log.SetLevel(cfg.Level())
	i18n.SetLanguage(cfg.Language)
	a.log.WithFields(logrus.Fields{
		"config": path,
		"format": cfg.Format,
		"output": cfg.Output,
	}).Debug("configuration loaded")
	return ctx, nil
}
